package raychel

// TileSize is the edge length of a square render tile, matching the
// reference implementation's 128x128 work-partitioning granularity.
const TileSize = 128

// Tile describes one rectangular region of a framebuffer, clipped to the
// framebuffer's bounds at its right/bottom edge.
type Tile struct {
	X, Y          int
	Width, Height int
}

// BuildTiles partitions a width x height image into tileSize x tileSize
// tiles, row-major, clipping the last tile in each row/column to fit.
// This is the work list the renderer's worker goroutines pull from via a
// shared atomic index, rather than the reference implementation's
// std::execution::par over the same partitioning.
func BuildTiles(width, height, tileSize int) []Tile {
	var tiles []Tile
	for y := 0; y < height; y += tileSize {
		h := tileSize
		if y+h > height {
			h = height - y
		}
		for x := 0; x < width; x += tileSize {
			w := tileSize
			if x+w > width {
				w = width - x
			}
			tiles = append(tiles, Tile{X: x, Y: y, Width: w, Height: h})
		}
	}
	return tiles
}
