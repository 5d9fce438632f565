package syncer

import "github.com/salespro-app/salespro/internal/models"

// Merge builds the reconciled record from a local candidate and the remote
// row. The field-ownership table is explicit and is the contract reviewers
// should hold the sync layer to:
//
//	cold blob: remote wins per field. Optional fields absent from the
//	    remote payload (dossier, aboutMe, avatarUrl, ...) keep their local
//	    values; collections and settings the remote always carries
//	    (lessons, homeworks, chat, notebook, theme, notifications) replace
//	    the local ones wholesale, with no per-entry union
//	hot fields (xp, level, role): remote wins verbatim; level is re-derived
//	    from remote xp so the derivation invariant holds
//	name: remote wins unless the remote value is empty
//	identity fields the remote schema does not track (telegram username,
//	    local-only ids): local wins
//
// The result is always marked authenticated. Inputs are not mutated.
func Merge(local, remote *models.ProfileRecord) *models.ProfileRecord {
	merged := local.Clone()

	merged.ColdData = models.OverlayColdData(merged.ColdData, remote.ColdData)

	merged.XP = remote.XP
	merged.Level = models.LevelForXP(remote.XP)
	merged.Role = remote.Role
	if remote.Name != "" {
		merged.Name = remote.Name
	}

	merged.IsAuthenticated = true
	return merged
}
