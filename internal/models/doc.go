// Package models defines the catalog entities and the request inputs accepted by the API.
//
// Entities mirror rows of the catalog store and serialize with the store's column names:
//   - [Artist], [Album] and [Track] form the Artist → Album → Track ownership chain
//   - [Genre] and [MediaType] are read-only lookup tables
//   - [Playlist] groups tracks through the [PlaylistTrack] association
//
// Inputs ([AlbumInput], [ArtistInput], [TrackInput], [PlaylistInput], [PlaylistTrackInput]) carry
// pointer fields so that an absent field can be told apart from a zero value. Validation happens
// on the input before anything reaches the repositories.
package models
