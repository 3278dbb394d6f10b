package service

// paginate slices a snapshot like records[skip : skip+limit], clamped to the
// available range. No total count accompanies the page.
func paginate[T any](records []T, skip, limit int) []T {
	if skip >= len(records) {
		return []T{}
	}
	end := skip + limit
	if end > len(records) {
		end = len(records)
	}
	return records[skip:end]
}
