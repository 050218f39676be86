package update

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/cozy/internal/model"
)

// parseAddInput splits "name words minutes" from the add field. The last
// field is the duration in minutes.
func parseAddInput(raw string) (string, float64, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", 0, model.ErrEmptyName
	}
	if len(fields) == 1 {
		return "", 0, fmt.Errorf("%w: missing minutes", model.ErrInvalidDuration)
	}
	last := fields[len(fields)-1]
	minutes, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", model.ErrInvalidDuration, last)
	}
	name := strings.Join(fields[:len(fields)-1], " ")
	if err := model.ValidateInput(name, minutes); err != nil {
		return "", 0, err
	}
	return name, minutes, nil
}
