package signer

// Signer signs translation reports so downstream vulnerability pipelines can
// check where a CPE list came from
type Signer interface {
	// SignDetached creates an armored detached signature (report.csv.asc)
	SignDetached(data []byte) ([]byte, error)

	// Fingerprint identifies the signing key in logs
	Fingerprint() string
}
