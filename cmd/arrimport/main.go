// Command arrimport bulk-imports movie titles from a flat text file into a
// Radarr library, with duplicate detection, year-aware disambiguation, and
// crash-safe resume.
package main

func main() {
	Execute()
}
