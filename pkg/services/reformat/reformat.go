// Package reformat re-keys row collections from auxiliary sources
// (ad-spend sheets, the report datastore) by their state column so they
// can be joined with generated reports.
package reformat

// Rows is a row-index keyed collection of flat records.
type Rows map[int]map[string]any

// ByState groups sheet rows by their state field, found under either a
// "state" or "ads_state" key. The state key is removed from each
// re-keyed record and rows with an empty state are dropped.
func ByState(rows Rows) map[string]map[string]any {
	return rekey(rows, false)
}

// ByStoreState is the datastore variant of ByState: it additionally
// strips the datastore's surrogate "id" column.
func ByStoreState(rows Rows) map[string]map[string]any {
	return rekey(rows, true)
}

func rekey(rows Rows, dropID bool) map[string]map[string]any {
	out := make(map[string]map[string]any, len(rows))
	for _, row := range rows {
		stateKey := "state"
		if _, ok := row[stateKey]; !ok {
			stateKey = "ads_state"
		}
		state, _ := row[stateKey].(string)
		if state == "" {
			continue
		}
		delete(row, stateKey)
		if dropID {
			delete(row, "id")
		}
		out[state] = row
	}
	return out
}
