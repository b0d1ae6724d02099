//go:build !linux

package globber

import "os"

// statSys has no portable stat structure to read here; timestamps fall
// back to the modification time and ownership fields stay zero.
func statSys(fi os.FileInfo, st *EntryStats) {
	st.ATime = st.MTime
	st.CTime = st.MTime
}
