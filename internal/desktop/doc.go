// Package desktop answers the questions stacks asks the desktop environment:
// where the desktop directory is, what the localized Pictures, Videos, and
// Music folders are called, which applications are installed, and which
// application opens a given MIME type by default.
//
// Provider abstracts those lookups. XDG implements them from the freedesktop
// user-dirs, desktop-entry, and mimeapps conventions; Static returns fixed
// values for tests; WithOverrides layers configured names over either.
package desktop
