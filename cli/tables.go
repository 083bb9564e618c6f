package cli

import (
	"io"
	"strconv"
	"time"

	"bare/schema"
	"bare/store"

	"github.com/olekukonko/tablewriter"
)

// WriteSchema writes a table of the user-defined types in s.
func WriteSchema(w io.Writer, s *schema.Schema) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Name",
		"Kind",
		"Definition",
	})
	for _, name := range s.Names() {
		t, err := s.Lookup(name)
		if err != nil {
			return err
		}
		table.Append([]string{
			name,
			t.Kind().String(),
			t.String(),
		})
	}
	table.Render()
	return nil
}

// WriteRecords writes a table describing recs.
func WriteRecords(w io.Writer, recs []*store.Record) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Name",
		"Type",
		"Size",
		"Stored Size",
		"Compression",
		"Digest",
		"Stored At",
	})
	for _, rec := range recs {
		table.Append([]string{
			rec.Name,
			rec.Type,
			strconv.Itoa(len(rec.Payload)),
			strconv.Itoa(rec.StoredSize),
			rec.Compression.String(),
			rec.Digest.String(),
			rec.StoredAt.UTC().Format(time.RFC3339),
		})
	}
	table.Render()
}

// WriteVerifyResults writes a table of verification outcomes and returns
// the number of failures.
func WriteVerifyResults(w io.Writer, results []*store.VerifyResult) int {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Name",
		"Type",
		"Result",
	})
	var failed int
	for _, res := range results {
		outcome := "ok"
		if res.Err != nil {
			outcome = res.Err.Error()
			failed++
		}
		table.Append([]string{res.Name, res.Type, outcome})
	}
	table.Render()
	return failed
}
