package logger

// Shared log field name constants, to keep field naming consistent across
// the project for log querying.
const (
	// FieldLinkID link id field
	FieldLinkID = "linkId"

	// FieldLinkType link type field
	FieldLinkType = "linkType"

	// FieldEntityType entity type field
	FieldEntityType = "entityType"

	// FieldEntityID entity id field
	FieldEntityID = "entityId"

	// FieldSource link source endpoint field
	FieldSource = "source"

	// FieldTarget link target endpoint field
	FieldTarget = "target"

	// FieldReason soft rejection reason field
	FieldReason = "reason"

	// FieldAttempts retry attempt count field
	FieldAttempts = "attempts"

	// FieldKind event kind field
	FieldKind = "kind"

	// FieldError error message field
	FieldError = "error"

	// FieldDuration elapsed time field
	FieldDuration = "duration"
)
