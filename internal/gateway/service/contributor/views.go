package contributor

import (
	"metabridge/internal/gateway/entity"
	"metabridge/internal/taxonomy"
)

// AuthorsOf keeps the contributors holding the creator role, in order, and
// reshapes them into authors. Creators are assumed to be persons; an
// institutional creator is still emitted in the person-shaped author view.
func AuthorsOf(contributors []entity.Contributor) []entity.Author {
	out := make([]entity.Author, 0, len(contributors))
	for _, c := range contributors {
		if c.HasRole(taxonomy.SlugCreator) {
			out = append(out, c.AsAuthor())
		}
	}
	return out
}

// ContributorsOf returns every contributor, creators included, in order and
// with duplicates preserved.
func ContributorsOf(contributors []entity.Contributor) []entity.Contributor {
	return append(make([]entity.Contributor, 0, len(contributors)), contributors...)
}
