package util

import (
	"bytes"
	"encoding/binary"
)

type Byter interface {
	Bytes() []byte
}

func NewByter(b []byte) Byter {
	return bytes.NewBuffer(b)
}

func CopyBytes(b []byte) []byte {
	n := make([]byte, len(b))
	copy(n, b)

	return n
}

func Int64ToBytes(i int64) []byte {
	b := new(bytes.Buffer)
	_ = binary.Write(b, binary.BigEndian, i)

	return b.Bytes()
}

func BytesToInt64(b []byte) (int64, error) {
	var i int64
	if err := binary.Read(bytes.NewReader(b), binary.BigEndian, &i); err != nil {
		return 0, err
	}

	return i, nil
}

func Uint64ToBytes(i uint64) []byte {
	b := new(bytes.Buffer)
	_ = binary.Write(b, binary.BigEndian, i)

	return b.Bytes()
}

func BytesToUint64(b []byte) (uint64, error) {
	var i uint64
	if err := binary.Read(bytes.NewReader(b), binary.BigEndian, &i); err != nil {
		return 0, err
	}

	return i, nil
}

func Uint8ToBytes(i uint8) []byte {
	b := new(bytes.Buffer)
	_ = binary.Write(b, binary.BigEndian, i)

	return b.Bytes()
}

func BytesToUint8(b []byte) (uint8, error) {
	var i uint8
	if err := binary.Read(bytes.NewReader(b), binary.BigEndian, &i); err != nil {
		return 0, err
	}

	return i, nil
}

func ConcatBytesSlice(sl ...[]byte) []byte {
	var t int
	for _, s := range sl {
		t += len(s)
	}

	n := make([]byte, t)
	var i int
	for _, s := range sl {
		i += copy(n[i:], s)
	}

	return n
}
