package scan

import "errors"

var errBadDecimal = errors.New("temperature must look like 9.9 or 99.9, optionally signed")

// parseFixedDecimal decodes a temperature token of shape D.D or DD.D with
// an optional leading '-'. Digits are extracted by byte arithmetic; there
// is no general-purpose float parsing here. Any other shape is rejected
// rather than misparsed.
func parseFixedDecimal(tok []byte) (float64, error) {
	neg := false
	if len(tok) > 0 && tok[0] == '-' {
		neg = true
		tok = tok[1:]
	}

	var tenths int
	switch len(tok) {
	case 3: // D.D
		if !isDigit(tok[0]) || tok[1] != '.' || !isDigit(tok[2]) {
			return 0, errBadDecimal
		}
		tenths = int(tok[0]-'0')*10 + int(tok[2]-'0')
	case 4: // DD.D
		if !isDigit(tok[0]) || !isDigit(tok[1]) || tok[2] != '.' || !isDigit(tok[3]) {
			return 0, errBadDecimal
		}
		tenths = int(tok[0]-'0')*100 + int(tok[1]-'0')*10 + int(tok[3]-'0')
	default:
		return 0, errBadDecimal
	}

	v := float64(tenths) / 10
	if neg {
		v = -v
	}
	return v, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
