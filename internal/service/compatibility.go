package service

import (
	"fmt"
	"strings"

	"github.com/quartermaster-app/linkgraph/internal/domain"
	"github.com/quartermaster-app/linkgraph/pkg/code"
)

// checkCompatible validates a (linkType, sourceType, targetType) triple
// against the compatibility matrix. It fails closed on an unknown link
// type. The returned error names the offending side and lists the valid
// alternatives, since callers assemble links programmatically and need the
// reason to debug.
func checkCompatible(linkType domain.LinkType, sourceType, targetType domain.EntityType) error {
	if !linkType.Valid() {
		return code.ErrorLinkTypeUnknown.WithDetails(
			fmt.Sprintf("link type %q is not registered", linkType))
	}
	if !linkType.AllowsSource(sourceType) {
		return code.ErrorLinkSourceIncompatible.WithDetails(
			fmt.Sprintf("source entity type %q is not allowed for link type %q, allowed sources: %s",
				sourceType, linkType, joinEntityTypes(linkType.AllowedSources())))
	}
	if !linkType.AllowsTarget(targetType) {
		return code.ErrorLinkTargetIncompatible.WithDetails(
			fmt.Sprintf("target entity type %q is not allowed for link type %q, allowed targets: %s",
				targetType, linkType, joinEntityTypes(linkType.AllowedTargets())))
	}
	return nil
}

func joinEntityTypes(types []domain.EntityType) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
