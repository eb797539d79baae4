package object

import (
	"fmt"

	"govc/ginternals"
)

// TagParams represents all the data needed to create a Tag
// Params starting by Opt are optionals
type TagParams struct {
	Target    *Object
	Name      string
	Tagger    Signature
	Message   string
	OptGPGSig string
}

// Tag represents a Tag object
type Tag struct {
	rawObject *Object

	tagger  Signature
	tag     string
	message string

	gpgSig string

	target ginternals.Oid

	typ Type
}

// NewTag creates a new Tag object.
// Target must have already been persisted to the odb (i.e. have a
// non-zero ID); tagging an object that only exists in memory is
// rejected since the tag would point to nothing once written.
func NewTag(p *TagParams) (*Tag, error) {
	if p.Target == nil || p.Target.ID().IsZero() {
		return nil, fmt.Errorf("tag target has no ID: %w", ErrObjectInvalid)
	}
	return &Tag{
		target:  p.Target.ID(),
		typ:     p.Target.Type(),
		tag:     p.Name,
		tagger:  p.Tagger,
		message: p.Message,
		gpgSig:  p.OptGPGSig,
	}, nil
}

// NewTagFromObject creates a new Tag from a raw git object
//
// A tag has following format:
//
// object {sha}
// type {target_object_type}
// tag {tag_name}
// tagger {author_name} <{author_email}> {author_date_seconds} {author_date_timezone}
// gpgsig -----BEGIN PGP SIGNATURE-----
// {gpg key over multiple lines}
//  -----END PGP SIGNATURE-----
// {a blank line}
// {tag message}
//
// Note:
// - The gpgsig is optional
func NewTagFromObject(o *Object) (*Tag, error) {
	if o.typ != TypeTag {
		return nil, fmt.Errorf("type %s is not a tag: %w", o.typ, ErrObjectInvalid)
	}

	l, err := parseKVLM(o.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrTagInvalid)
	}

	tag := &Tag{
		rawObject: o,
		message:   l.message,
	}

	target, ok := l.get("object")
	if !ok {
		return nil, fmt.Errorf("tag has no target: %w", ErrTagInvalid)
	}
	tag.target, err = ginternals.NewOidFromStr(target)
	if err != nil {
		return nil, fmt.Errorf("could not parse target id %q: %w", target, err)
	}

	typ, ok := l.get("type")
	if !ok {
		return nil, fmt.Errorf("tag has no type: %w", ErrTagInvalid)
	}
	tag.typ, err = NewTypeFromString(typ)
	if err != nil {
		return nil, fmt.Errorf("invalid object type %s: %w", typ, err)
	}

	tag.tag, _ = l.get("tag")

	tagger, ok := l.get("tagger")
	if !ok {
		return nil, fmt.Errorf("tag has no tagger: %w", ErrTagInvalid)
	}
	tag.tagger, err = NewSignatureFromBytes([]byte(tagger))
	if err != nil {
		return nil, fmt.Errorf("could not parse tagger [%s]: %w", tagger, err)
	}

	tag.gpgSig, _ = l.get("gpgsig")

	return tag, nil
}

// ID returns the SHA of the tag object
func (t *Tag) ID() ginternals.Oid {
	return t.ToObject().ID()
}

// Target returns the ID of the object targeted by the tag
func (t *Tag) Target() ginternals.Oid {
	return t.target
}

// Type returns the type of the targeted object
func (t *Tag) Type() Type {
	return t.typ
}

// Name returns the tag's name
func (t *Tag) Name() string {
	return t.tag
}

// Tagger returns the Signature of the person that created the tag
func (t *Tag) Tagger() Signature {
	return t.tagger
}

// Message returns the tag's message
func (t *Tag) Message() string {
	return t.message
}

// GPGSig returns the GPG signature of the tag, if any
func (t *Tag) GPGSig() string {
	return t.gpgSig
}

// ToObject returns the underlying Object.
// A tag object is always stored with the "tag" type, even though it
// points to a target of a different type.
func (t *Tag) ToObject() *Object {
	if t.rawObject != nil {
		return t.rawObject
	}

	l := &kvlm{message: t.message}
	l.add("object", t.target.String())
	l.add("type", t.typ.String())
	l.add("tag", t.tag)
	l.add("tagger", t.Tagger().String())
	if t.gpgSig != "" {
		l.add("gpgsig", t.gpgSig)
	}

	t.rawObject = New(TypeTag, l.serialize())
	return t.rawObject
}
