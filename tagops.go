package git

import (
	"govc/ginternals"
	"govc/ginternals/object"
	"golang.org/x/xerrors"
)

// NewLightweightTag creates a reference under refs/tags/ pointing
// directly at target. No tag object is created.
func (r *Repository) NewLightweightTag(name string, target ginternals.Oid) (*ginternals.Reference, error) {
	refName := ginternals.LocalTagFullName(name)
	ref, err := r.NewReference(refName, target)
	if err != nil {
		return nil, xerrors.Errorf("could not create lightweight tag %s: %w", name, err)
	}
	return ref, nil
}

// NewAnnotatedTag creates a tag object pointing at target, then a
// reference under refs/tags/ pointing at the tag object.
func (r *Repository) NewAnnotatedTag(name string, target ginternals.Oid, tagger object.Signature, message string) (*object.Tag, error) {
	targetObj, err := r.Object(target)
	if err != nil {
		return nil, xerrors.Errorf("could not get target object %s: %w", target.String(), err)
	}

	tag, err := object.NewTag(&object.TagParams{
		Target:  targetObj,
		Name:    name,
		Tagger:  tagger,
		Message: message,
	})
	if err != nil {
		return nil, xerrors.Errorf("could not create tag: %w", err)
	}
	if _, err := r.WriteObject(tag.ToObject()); err != nil {
		return nil, xerrors.Errorf("could not persist tag object: %w", err)
	}

	refName := ginternals.LocalTagFullName(name)
	if _, err := r.NewReference(refName, tag.ID()); err != nil {
		return nil, xerrors.Errorf("could not create tag reference %s: %w", name, err)
	}
	return tag, nil
}
