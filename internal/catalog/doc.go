// package catalog unifies the built-in track list and the Spotify client
// behind a single search/browse surface
package catalog
