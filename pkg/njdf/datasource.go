package njdf

type DataSource struct {
	OriginalFormat string `groups:"internal"` // or enum (eg. CSV, seed-record)
	Provider       string `groups:"internal"`
	Dataset        string `groups:"internal"`
	Identifier     string `groups:"internal"`
}
