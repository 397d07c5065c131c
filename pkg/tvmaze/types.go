// Package tvmaze provides a client for the TVMaze public API.
package tvmaze

// Show is a TV show as returned by TVMaze.
type Show struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`    // "Running", "Ended", "To Be Determined"
	Premiered string `json:"premiered"` // YYYY-MM-DD, may be empty
	URL       string `json:"url"`
}

// Episode is a single episode from the show's episode list.
type Episode struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Number  int    `json:"number"`  // 0 for specials without a number
	Airdate string `json:"airdate"` // YYYY-MM-DD, empty when unannounced
	Runtime int    `json:"runtime"`
}
