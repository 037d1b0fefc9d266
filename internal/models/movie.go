package models

// MovieLink is the absolute URL of a movie detail page. Two links are the same
// movie only when their strings are equal.
type MovieLink string

// String returns the link as a plain URL string
func (l MovieLink) String() string {
	return string(l)
}

// MovieDetails holds what a detail page yielded. Either field may be empty:
// not every page offers the preferred resolution and title extraction can fail.
type MovieDetails struct {
	Title        string `json:"title,omitempty"`
	DownloadLink string `json:"downloadLink,omitempty"`
}

// HasTitle reports whether a title was resolved
func (d MovieDetails) HasTitle() bool {
	return d.Title != ""
}

// HasDownloadLink reports whether a download link was resolved
func (d MovieDetails) HasDownloadLink() bool {
	return d.DownloadLink != ""
}

// Complete reports whether the movie can be handed to the downloader
func (d MovieDetails) Complete() bool {
	return d.HasTitle() && d.HasDownloadLink()
}

// DownloadTarget describes where a torrent file is fetched from and written to
type DownloadTarget struct {
	SourceURL         string
	DestinationPath   string
	SanitizedFilename string
}
