package game

import "fmt"

// Resource is one of the five token colors. The order of the constants is
// the order used by the move catalog.
type Resource uint8

const (
	Green Resource = iota
	Blue
	Red
	White
	Black
)

// Colors is the number of non-wildcard resources.
const Colors = 5

// Gold is the index of the wildcard token in Holdings.
const Gold = Colors

var Resources = [Colors]Resource{Green, Blue, Red, White, Black}

var resourceNames = [Colors]string{"Green", "Blue", "Red", "White", "Black"}

func (r Resource) String() string {
	if int(r) < Colors {
		return resourceNames[r]
	}
	return fmt.Sprintf("Resource(%d)", uint8(r))
}

func (r Resource) MarshalText() ([]byte, error) {
	if int(r) >= Colors {
		return nil, fmt.Errorf("unknown resource %d", uint8(r))
	}
	return []byte(resourceNames[r]), nil
}

func (r *Resource) UnmarshalText(text []byte) error {
	for i, name := range resourceNames {
		if name == string(text) {
			*r = Resource(i)
			return nil
		}
	}
	return fmt.Errorf("unknown resource %q", text)
}
