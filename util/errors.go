package util

var (
	IgnoreError     = NewError("ignore")
	NotFoundError   = NewError("not found")
	FoundError      = NewError("found")
	DuplicatedError = NewError("duplicated error")
	WrongTypeError  = NewError("wrong type")
)
