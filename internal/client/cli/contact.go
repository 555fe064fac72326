package cli

import (
	"context"
	"fmt"

	"github.com/knothost/siteapi/internal/client/api"
)

var getMultiline = GetMultiline

func (a *App) Contact(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Your email", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone (optional)", a.out)
	if err != nil {
		return err
	}
	details, err := getMultiline(a.reader, "Describe your project", a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Contact(ctx, api.ContactRequest{Name: name, Email: email, Phone: phone, Details: details})
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "%s (reference %s)\n", res.Message, res.ID)
	return nil
}
