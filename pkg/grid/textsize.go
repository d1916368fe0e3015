package grid

// Tile label text sizes, in abstract size units.
const (
	TextSizeLarge  = 12
	TextSizeMedium = 10
	TextSizeSmall  = 7
)

// TileTextSizeFor returns the label text size for a base column count.
// Counts other than 4 and 5 use the large size.
func TileTextSizeFor(columns int) int {
	switch columns {
	case 5:
		return TextSizeSmall
	case 4:
		return TextSizeMedium
	default:
		return TextSizeLarge
	}
}
