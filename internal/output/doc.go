// Package output writes rendered .zwo documents under the export directory.
//
// DirSink lays files out as <export>/<directory>/<name>.zwo, where the
// breadcrumb directory is slugified per segment (ASCII folded) and the file
// name keeps Unicode letters. Writes are atomic and the export directory is
// held under an advisory lock for the duration of a run so two concurrent
// runs cannot interleave files.
package output
