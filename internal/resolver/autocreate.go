package resolver

import (
	"context"
	"fmt"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// LinkedPageCreator queues creation of missing pages whose incoming property
// designates a "creates pages with form" form.
type LinkedPageCreator struct {
	store   sflink.PropertyStore
	lookup  *FormLookup
	pages   sflink.PageSource
	printer sflink.FormPrinter
	queue   sflink.JobQueue
	titles  sflink.TitleResolver
	logger  sflink.Logger
}

// NewLinkedPageCreator creates a LinkedPageCreator. store may be nil.
func NewLinkedPageCreator(
	store sflink.PropertyStore,
	lookup *FormLookup,
	pages sflink.PageSource,
	printer sflink.FormPrinter,
	queue sflink.JobQueue,
	titles sflink.TitleResolver,
	logger sflink.Logger,
) *LinkedPageCreator {
	if lookup == nil {
		panic("lookup cannot be nil")
	}
	if pages == nil {
		panic("pages cannot be nil")
	}
	if printer == nil {
		panic("printer cannot be nil")
	}
	if queue == nil {
		panic("queue cannot be nil")
	}
	if titles == nil {
		panic("titles cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LinkedPageCreator{
		store:   store,
		lookup:  lookup,
		pages:   pages,
		printer: printer,
		queue:   queue,
		titles:  titles,
		logger:  logger,
	}
}

// CreateLinkedPage queues a job creating target when one of its incoming properties
// designates a creation form. viewed is the page whose rendering produced the link;
// a zero viewed page or a Special page never triggers creation, since special pages
// list deleted pages as red links.
func (c *LinkedPageCreator) CreateLinkedPage(ctx context.Context, viewed, target sflink.PageIdentity, userID int64) (bool, error) {
	if viewed.IsZero() || viewed.Namespace == sflink.NSSpecial {
		return false, nil
	}
	if c.store == nil {
		return false, sflink.ErrPropertyStoreUnavailable
	}
	target, ok := c.titles.MakeTitleSafe(target.Namespace, target.Name)
	if !ok {
		return false, nil
	}

	incoming, err := c.store.IncomingProperties(ctx, target)
	if err != nil {
		return false, fmt.Errorf("failed to read incoming properties of %s: %w", c.titles.TitleString(target), err)
	}

	for _, prop := range incoming {
		if prop.SubjectName == "" {
			continue
		}
		forms, err := c.lookup.LookupForms(ctx, sflink.Page(sflink.NSProperty, prop.SubjectName), sflink.PropCreatesPagesWithForm)
		if err != nil {
			return false, err
		}
		if len(forms) == 0 {
			continue
		}
		if err := c.enqueue(ctx, target, forms[0], userID); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (c *LinkedPageCreator) enqueue(ctx context.Context, target sflink.PageIdentity, formName string, userID int64) error {
	definition, found, err := c.pages.PageText(ctx, sflink.Page(sflink.NSForm, formName))
	if err != nil {
		return fmt.Errorf("failed to load form %q: %w", formName, err)
	}
	if !found {
		c.logger.Verbose("create linked page: form %q has no definition page", formName)
	}

	out, err := c.printer.Print(ctx, definition, sflink.PlaceholderPageName)
	if err != nil {
		return fmt.Errorf("failed to render form %q: %w", formName, err)
	}

	job := sflink.NewPageCreationJob(target, userID, out.DataText)
	if err := c.queue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("failed to enqueue creation of %s: %w", c.titles.TitleString(target), err)
	}

	c.logger.Info("Queued creation of %s with form %s (job %s)", c.titles.TitleString(target), formName, job.ID)
	return nil
}
