//go:build unix

package artifact

import (
	"io/fs"
	"strconv"
	"syscall"
)

// fileID names the inode behind info. Put always renames a fresh file into place,
// so every stored version has its own inode.
func fileID(info fs.FileInfo) string {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ""
	}
	return strconv.FormatUint(uint64(st.Dev), 10) + ":" + strconv.FormatUint(uint64(st.Ino), 10)
}
