package models

import "errors"

// Sentinel errors shared between services and the HTTP layer. Handlers map
// these onto status codes; anything else becomes a 500.
var (
	// ErrEmptyBaseline is returned by the reset engine when no starting stock
	// exists; archiving an empty day would wipe the remainder table for nothing.
	ErrEmptyBaseline = errors.New("stok awal kosong")

	// ErrAlreadyReset rejects a second reset within the same UTC calendar day.
	ErrAlreadyReset = errors.New("reset harian sudah dijalankan hari ini")

	// ErrInvalidDate is returned for report queries whose date does not parse.
	ErrInvalidDate = errors.New("tanggal tidak valid")

	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("data tidak ditemukan")

	// ErrInvalidCredentials is returned for unknown users or wrong passwords.
	ErrInvalidCredentials = errors.New("username atau password salah")
)
