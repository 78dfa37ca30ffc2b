package resolver

import (
	"context"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// Link is a rendered link whose target may not exist.
type Link struct {
	Viewed sflink.PageIdentity
	Target sflink.PageIdentity
	UserID int64
	Href   string
	Broken bool
}

// BrokenLinkHook points red links at the form that should create the missing page.
type BrokenLinkHook struct {
	creator *LinkedPageCreator
	editor  *EditLinkResolver
}

// NewBrokenLinkHook creates a BrokenLinkHook.
func NewBrokenLinkHook(creator *LinkedPageCreator, editor *EditLinkResolver) *BrokenLinkHook {
	if creator == nil {
		panic("creator cannot be nil")
	}
	if editor == nil {
		panic("editor cannot be nil")
	}
	return &BrokenLinkHook{creator: creator, editor: editor}
}

// Href returns the href to render for link. Working links and pages queued for
// automatic creation keep their href; other broken links point at the form-edit
// URL when a form applies.
func (h *BrokenLinkHook) Href(ctx context.Context, link Link) (string, error) {
	if !link.Broken {
		return link.Href, nil
	}

	created, err := h.creator.CreateLinkedPage(ctx, link.Viewed, link.Target, link.UserID)
	if err != nil {
		return "", err
	}
	if created {
		return link.Href, nil
	}

	url, ok, err := h.editor.FormEditLink(ctx, link.Target)
	if err != nil {
		return "", err
	}
	if !ok {
		return link.Href, nil
	}
	return url, nil
}
