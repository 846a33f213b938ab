package models

// BackupCapabilities describes which optional sections a backup format
// version carries. The restore engine consults this once, up front, instead
// of comparing version strings throughout.
type BackupCapabilities struct {
	HasTravelDocuments bool
	HasTripSeries      bool
}

// versionCapabilities is the ordered table of supported backup versions.
var versionCapabilities = []struct {
	version string
	caps    BackupCapabilities
}{
	{BackupVersion100, BackupCapabilities{}},
	{BackupVersion110, BackupCapabilities{HasTravelDocuments: true}},
	{BackupVersion120, BackupCapabilities{HasTravelDocuments: true, HasTripSeries: true}},
}

// CapabilitiesFor returns the capabilities of a backup format version.
// The second return is false for unsupported versions.
func CapabilitiesFor(version string) (BackupCapabilities, bool) {
	for _, entry := range versionCapabilities {
		if entry.version == version {
			return entry.caps, true
		}
	}

	return BackupCapabilities{}, false
}

// BackupInfo describes the backup format this instance writes and accepts.
type BackupInfo struct {
	CurrentVersion    string   `json:"currentVersion"`
	SupportedVersions []string `json:"supportedVersions"`
	SupportedFormats  []string `json:"supportedFormats"`
}

// SupportedBackupVersions returns the supported versions, oldest first.
func SupportedBackupVersions() []string {
	out := make([]string, len(versionCapabilities))
	for i, entry := range versionCapabilities {
		out[i] = entry.version
	}

	return out
}
