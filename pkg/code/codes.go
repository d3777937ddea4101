package code

// Link layer error codes.
//
// 201xx are structural failures: never retried, the link can not exist in
// that shape. 202xx are referential failures: an endpoint was still absent
// after the existence validator exhausted its retry budget. 209xx are
// store-level failures.
var (
	ErrorLinkTypeUnknown        = NewError(20100, "unknown link type")
	ErrorLinkSourceIncompatible = NewError(20101, "source entity type is not allowed for this link type")
	ErrorLinkTargetIncompatible = NewError(20102, "target entity type is not allowed for this link type")
	ErrorLinkSelf               = NewError(20103, "link source and target are the same entity")

	ErrorLinkEndpointMissing = NewError(20200, "link endpoint entity does not exist")

	ErrorStoreQuery = NewError(20900, "link store query failed")
	ErrorStoreWrite = NewError(20901, "link store write failed")
)
