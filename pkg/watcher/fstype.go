package watcher

// FilesystemType is a coarse classification of the filesystem under a path.
type FilesystemType int

const (
	FSTypeUnknown FilesystemType = iota
	FSTypeLocal
	FSTypeNFS
	FSTypeSMB
	FSTypeFUSE
)

func (t FilesystemType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeNFS:
		return "nfs"
	case FSTypeSMB:
		return "smb"
	case FSTypeFUSE:
		return "fuse"
	default:
		return "unknown"
	}
}

// isRemoteFilesystem reports whether inotify events are unreliable on t.
func isRemoteFilesystem(t FilesystemType) bool {
	switch t {
	case FSTypeNFS, FSTypeSMB, FSTypeFUSE:
		return true
	}
	return false
}
