package models

import (
	"encoding/json"

	"github.com/careerkey/portal/internal/common"
)

// VerificationRecord describes a verified degree as returned by the verify
// endpoint. Immutable once received; used only for display.
type VerificationRecord struct {
	StudentName     string      `json:"studentName"`
	StudentCNIC     string      `json:"studentCnic"`
	UniversityName  string      `json:"universityName"`
	Program         string      `json:"program"`
	RollNumber      string      `json:"rollNumber"`
	PassingYear     json.Number `json:"passingYear"`
	CGPA            json.Number `json:"cgpa"`
	RequestDate     string      `json:"requestDate"`
	TransactionHash string      `json:"transactionHash"`
	BlockNumber     json.Number `json:"blockNumber"`
	IPFSHash        string      `json:"ipfsHash"`
}

// AssetURL returns the public gateway link for the content-addressed degree
// asset, or "" when the record carries no asset hash. The link is rendered,
// never fetched.
func (r *VerificationRecord) AssetURL() string {
	if r.IPFSHash == "" {
		return ""
	}
	return common.IPFSGatewayURL + r.IPFSHash
}
