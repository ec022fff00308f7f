package ingest

import "github.com/atino-ops/larksync/pkg/lark"

// Options names the table fields the pipeline reads and writes.
type Options struct {
	// LinkField holds the source URL, either as a plain string or as
	// rich-text segments.
	LinkField string

	// KeyField is the business identifier used in derived filenames.
	KeyField string

	// NameField is the display name used in derived filenames.
	NameField string

	// DateField is the millisecond-epoch date used in derived filenames.
	DateField string

	// AssetField receives the uploaded attachment reference.
	AssetField string

	// Ext is the filename extension without the dot. Default "png".
	Ext string
}

// DefaultOptions returns the production QR table field names.
func DefaultOptions() Options {
	return Options{
		LinkField:  "Link QR",
		KeyField:   "Mã cửa hàng",
		NameField:  "Tên cửa hàng",
		DateField:  "Ngày",
		AssetField: "QR code",
		Ext:        "png",
	}
}

// Item is one unit of fetch-and-reupload work derived from an eligible row.
type Item struct {
	RecordID string
	URL      string
	Filename string
}

// BuildItems filters rows to those eligible for ingestion and derives each
// item's filename. A row qualifies when it has a record id and a non-empty
// link; everything else is silently excluded and never counted. A row whose
// asset field is already populated is still eligible: reruns intentionally
// overwrite.
func BuildItems(records []lark.Record, opts Options) []Item {
	ext := opts.Ext
	if ext == "" {
		ext = "png"
	}

	var items []Item
	for _, rec := range records {
		if rec.RecordID == "" {
			continue
		}
		url := lark.TextField(rec.Fields, opts.LinkField)
		if url == "" {
			continue
		}

		ms, ok := lark.EpochMillis(rec.Fields, opts.DateField)
		items = append(items, Item{
			RecordID: rec.RecordID,
			URL:      url,
			Filename: Filename(
				lark.StringField(rec.Fields, opts.KeyField),
				lark.StringField(rec.Fields, opts.NameField),
				DateString(ms, ok),
				ext,
			),
		})
	}
	return items
}
