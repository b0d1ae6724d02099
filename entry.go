package globber

import (
	"os"
)

// Dirent describes an entry's type without following symlinks.
type Dirent struct {
	IsFile      bool `json:"isFile"`
	IsDirectory bool `json:"isDirectory"`
	IsSymlink   bool `json:"isSymlink"`
}

// Entry is the materialized output record in object mode.
type Entry struct {
	Path string `json:"path"`
	Name string `json:"name"`
	*Dirent
	Stats *EntryStats `json:"stats,omitempty"`
}

// EntryStats is a frozen stat record. Timestamps are Unix seconds.
type EntryStats struct {
	Size        int64  `json:"size"`
	ATime       int64  `json:"atime"`
	MTime       int64  `json:"mtime"`
	CTime       int64  `json:"ctime"`
	Mode        uint32 `json:"mode"`
	UID         uint32 `json:"uid"`
	GID         uint32 `json:"gid"`
	Inode       uint64 `json:"inode"`
	Nlink       uint64 `json:"nlink"`
	IsFile      bool   `json:"isFile"`
	IsDirectory bool   `json:"isDirectory"`
	IsSymlink   bool   `json:"isSymlink"`
}

func direntFromInfo(fi os.FileInfo) *Dirent {
	return &Dirent{
		IsFile:      fi.Mode().IsRegular(),
		IsDirectory: fi.IsDir(),
		IsSymlink:   fi.Mode()&os.ModeSymlink != 0,
	}
}

// statsFromInfo builds an EntryStats from a stat result; IsSymlink comes
// from the lstat result when one is given. The platform-specific fields
// come from statSys.
func statsFromInfo(fi os.FileInfo, lfi os.FileInfo) *EntryStats {
	st := &EntryStats{
		Size:        fi.Size(),
		MTime:       fi.ModTime().Unix(),
		Mode:        uint32(fi.Mode()),
		IsFile:      fi.Mode().IsRegular(),
		IsDirectory: fi.IsDir(),
	}
	if lfi != nil {
		st.IsSymlink = lfi.Mode()&os.ModeSymlink != 0
	}
	statSys(fi, st)
	return st
}
