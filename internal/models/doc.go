// package models defines the data model for the resonance music player
package models
