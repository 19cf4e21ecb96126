package models

import "strings"

// Status order. Progres tipikal: Pending -> Preparing -> Ready -> Served ->
// Completed, tapi staff/admin boleh memindahkan order mundur atau melompat
// maju selama order belum terminal. Cancelled bisa dicapai dari status
// non-terminal mana pun.
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusServed    = "Served"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// OrderStatuses adalah enumerasi tertutup semua status yang dikenal.
var OrderStatuses = []string{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusServed,
	StatusCompleted,
	StatusCancelled,
}

// NormalizeStatus mengembalikan bentuk kanonik dari status (case-insensitive)
// dan false jika status tidak dikenal.
func NormalizeStatus(s string) (string, bool) {
	for _, known := range OrderStatuses {
		if strings.EqualFold(s, known) {
			return known, true
		}
	}
	return "", false
}

// IsTerminalStatus -> Completed dan Cancelled bersifat terminal: tidak ada
// transisi status lagi, hanya delete yang ditawarkan.
func IsTerminalStatus(s string) bool {
	return strings.EqualFold(s, StatusCompleted) || strings.EqualFold(s, StatusCancelled)
}

// CanTransition -> non-terminal boleh pindah ke status mana pun di
// enumerasi; order terminal tidak boleh pindah ke mana-mana.
func CanTransition(from, to string) bool {
	if IsTerminalStatus(from) {
		return false
	}
	_, ok := NormalizeStatus(to)
	return ok
}

// CanDelete -> delete hanya ditawarkan untuk order terminal.
func CanDelete(status string) bool {
	return IsTerminalStatus(status)
}
