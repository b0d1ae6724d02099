//go:build linux

package globber

import (
	"os"
	"syscall"
)

// statSys fills the fields only the platform stat structure carries.
// ATime and CTime fall back to MTime when syscall.Stat_t is unavailable
// (in-memory filesystems).
func statSys(fi os.FileInfo, st *EntryStats) {
	sys, ok := fi.Sys().(*syscall.Stat_t)
	if !ok || sys == nil {
		st.ATime = st.MTime
		st.CTime = st.MTime
		return
	}
	st.ATime = sys.Atim.Sec
	st.CTime = sys.Ctim.Sec
	st.UID = sys.Uid
	st.GID = sys.Gid
	st.Inode = uint64(sys.Ino)
	st.Nlink = uint64(sys.Nlink)
}
