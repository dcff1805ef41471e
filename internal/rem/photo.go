package rem

// PhotoManager stores property photos and their thumbnails under the
// configured photo directory.
type PhotoManager interface {
	// Save imports the image at sourcePath, scaling it down to the
	// standard display size and generating a thumbnail. Returns the
	// stored filename, which embeds the company code and a timestamp.
	Save(sourcePath, companyCode string) (string, error)

	// Remove deletes a stored photo and its thumbnail if present.
	Remove(filename string) error

	// Path returns the absolute path of a stored photo.
	Path(filename string) string

	// ThumbnailPath returns the absolute path of a photo's thumbnail.
	ThumbnailPath(filename string) string
}
