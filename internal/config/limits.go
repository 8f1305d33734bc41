package config

const (
	// MaxTitleLength is the maximum length for document titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxTitleLength = 255

	// MaxAuthors caps the number of names parsed from the authors field.
	MaxAuthors = 20

	// MaxAuthorNameLength is the maximum length of a single author name.
	MaxAuthorNameLength = 100

	// MaxDateLength bounds the free-form display date.
	MaxDateLength = 64

	// MaxIDLength bounds document ids, generated or supplied.
	MaxIDLength = 200

	// SnippetMaxLength is the number of characters kept in a listing
	// snippet before the ellipsis is appended.
	SnippetMaxLength = 300

	// MaxUploadSize is the largest multipart body accepted on save.
	MaxUploadSize = 32 << 20

	// DefaultSearchLimit and MaxSearchLimit bound search page sizes.
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)
