package signer

import (
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
)

// apitypesHash computes the EIP-712 signing digest of the request's typed data.
func apitypesHash(req *SignTypedDataRequest) ([]byte, string, error) {
	digest, preimage, err := apitypes.TypedDataAndHash(req.TypedData)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to compute typed data hash")
	}

	return digest, preimage, nil
}
