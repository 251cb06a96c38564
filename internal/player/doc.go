// package player implements the playback controller and pending-track queue
package player
