package governance

// ByzantineMajority returns the minimum number of affirmative votes
// tolerating up to floor((total-1)/3) faulty validators; the smallest
// integer strictly greater than 2/3 of total.
func ByzantineMajority(total int) int {
	return total*2/3 + 1
}

// ValidateMajorityCount checks a per-configuration majority override. The
// override is accepted only inside [ByzantineMajority(total), total]; a
// weaker majority breaks byzantine safety, a stronger one could never pass.
func ValidateMajorityCount(total, proposed int) error {
	min := ByzantineMajority(total)
	if proposed < min || proposed > total {
		return InvalidMajorityCountError.Errorf("min=%d max=%d proposed=%d", min, total, proposed)
	}

	return nil
}
