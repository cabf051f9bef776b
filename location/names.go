package location

import (
	"strconv"
	"strings"
)

// splitArrayIndex splits "name[k]" into "name" and k.
// The index must be a canonical decimal: no sign, no leading zeros.
func splitArrayIndex(name string) (base string, index int, ok bool) {
	if !strings.HasSuffix(name, "]") {
		return "", 0, false
	}
	open := strings.LastIndexByte(name, '[')
	if open <= 0 {
		return "", 0, false
	}
	digits := name[open+1 : len(name)-1]
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return "", 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", 0, false
		}
	}
	index, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}
	return name[:open], index, true
}
