package project

// Project is a consulting engagement tracked in the logbook. Rows are
// created and maintained outside this service; the dashboard only reads them.
// Name doubles as the join key into phase and client-token records.
type Project struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"client_name"`
}
