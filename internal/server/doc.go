// package server contains the loopback HTTP server that receives the
// Spotify OAuth callback
package server
