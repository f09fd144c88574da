package models

// SiteBackup is the full exportable snapshot of the site. The settings map is
// key-sorted before marshaling so the sha256 change-detection hash is stable.
type SiteBackup struct {
	Documents []ContentDocument `json:"documents"`
	Tags      []Tag             `json:"tags"`
	Templates []Template        `json:"templates"`
	Sections  []Section         `json:"sections"`
	Settings  map[string]string `json:"settings"`
}
