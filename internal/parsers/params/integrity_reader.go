package params

import (
	"github.com/deploymenttheory/go-cryptstatus/internal/types"
)

// DecodeIntegrityParams converts a raw integrity record populated by the
// engine into an owned IntegrityParams value. All three algorithm name fields
// are optional: a null name means "no algorithm configured" and must never be
// conflated with an algorithm configured with an empty name. The journal
// sub-record is materialized only when the engine reported any journal
// encryption or journal integrity field.
func DecodeIntegrityParams(raw *types.RawIntegrityParams) (*types.IntegrityParams, error) {
	integrity, err := optionalText("integrity", raw.Integrity)
	if err != nil {
		return nil, err
	}

	journal, err := decodeJournalParams(raw)
	if err != nil {
		return nil, err
	}

	return &types.IntegrityParams{
		JournalSize:       raw.JournalSize,
		JournalWatermark:  raw.JournalWatermark,
		JournalCommitTime: raw.JournalCommitTime,
		InterleaveSectors: raw.InterleaveSectors,
		TagSize:           raw.TagSize,
		SectorSize:        raw.SectorSize,
		BufferSectors:     raw.BufferSectors,
		Integrity:         integrity,
		IntegrityKeySize:  raw.IntegrityKeySize,
		Journal:           journal,
	}, nil
}

func decodeJournalParams(raw *types.RawIntegrityParams) (*types.JournalIntegrityParams, error) {
	if raw.JournalIntegrity == nil && raw.JournalIntegrityKey == nil &&
		raw.JournalCrypt == nil && raw.JournalCryptKey == nil {
		return nil, nil
	}

	integrityAlg, err := optionalText("journal_integrity", raw.JournalIntegrity)
	if err != nil {
		return nil, err
	}

	integrityKey, err := sizedBuffer("journal_integrity_key", raw.JournalIntegrityKey, raw.JournalIntegrityKeySize)
	if err != nil {
		return nil, err
	}

	cryptAlg, err := optionalText("journal_crypt", raw.JournalCrypt)
	if err != nil {
		return nil, err
	}

	cryptKey, err := sizedBuffer("journal_crypt_key", raw.JournalCryptKey, raw.JournalCryptKeySize)
	if err != nil {
		return nil, err
	}

	return &types.JournalIntegrityParams{
		IntegrityAlg: integrityAlg,
		IntegrityKey: integrityKey,
		CryptAlg:     cryptAlg,
		CryptKey:     cryptKey,
	}, nil
}
