package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userconsole/internal/actions"
	"github.com/dmitrijs2005/userconsole/internal/common"
	"github.com/dmitrijs2005/userconsole/internal/models"
	"github.com/go-playground/validator/v10"
)

var getTextWithDefault = GetTextWithDefault
var getConfirmation = GetConfirmation

// Edit asks for every field with the current value as default. The change
// is applied only after the save is confirmed; declining it offers to
// discard the edit or go back to the save question.
func (a *App) Edit(ctx context.Context, arg string) error {
	u, ok, err := a.lookup(ctx, arg, "edit")
	if err != nil || !ok {
		return err
	}

	patch, err := a.readPatch(u)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "No changes")
		return nil
	}
	if err := a.validatePatch(patch); err != nil {
		return err
	}

	target := fmt.Sprintf("user #%d", u.ID)
	for {
		tok := a.confirm.Request(actions.KindSave, target, func(ctx context.Context) error {
			_, err := a.cache.UpdateRecord(ctx, u.ID, patch)
			return err
		})
		save, err := getConfirmation(a.reader, "Save changes to "+target+"?", a.out)
		if err != nil {
			_ = a.confirm.Cancel(tok)
			return err
		}
		if save {
			if err := a.confirm.Confirm(ctx, tok); err != nil {
				fmt.Fprintln(a.out, "Failed to update user. Please try again.")
				return err
			}
			fmt.Fprintf(a.out, "Saved %s\n", target)
			return nil
		}
		_ = a.confirm.Cancel(tok)

		tok = a.confirm.Request(actions.KindDiscard, target, nil)
		discard, err := getConfirmation(a.reader, "Discard changes?", a.out)
		if err != nil {
			_ = a.confirm.Cancel(tok)
			return err
		}
		if discard {
			if err := a.confirm.Confirm(ctx, tok); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Changes discarded")
			return nil
		}
		_ = a.confirm.Cancel(tok)
	}
}

// Delete removes a user from the local collection after confirmation.
func (a *App) Delete(ctx context.Context, arg string) error {
	u, ok, err := a.lookup(ctx, arg, "delete")
	if err != nil || !ok {
		return err
	}

	target := fmt.Sprintf("user #%d", u.ID)
	tok := a.confirm.Request(actions.KindDelete, target, func(ctx context.Context) error {
		_, err := a.cache.DeleteRecord(ctx, u.ID)
		return err
	})

	yes, err := getConfirmation(a.reader, fmt.Sprintf("Delete %s (%s)?", target, u.FullName()), a.out)
	if err != nil || !yes {
		_ = a.confirm.Cancel(tok)
		if err == nil {
			fmt.Fprintln(a.out, "Cancelled")
		}
		return err
	}

	if err := a.confirm.Confirm(ctx, tok); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", target)
	return nil
}

// readPatch prompts for each field and keeps only the ones that changed.
func (a *App) readPatch(u models.User) (models.UserPatch, error) {
	var err error
	ask := func(prompt, current string) *string {
		if err != nil {
			return nil
		}
		var v string
		if v, err = getTextWithDefault(a.reader, prompt, current, a.out); err != nil {
			return nil
		}
		if v = strings.TrimSpace(v); v == current {
			return nil
		}
		return models.StringPtr(v)
	}

	patch := models.UserPatch{
		FirstName: ask("First name", u.FirstName),
		LastName:  ask("Last name", u.LastName),
		Email:     ask("Email", u.Email),
	}
	if err != nil {
		return models.UserPatch{}, err
	}
	return patch, nil
}

func (a *App) validatePatch(p models.UserPatch) error {
	err := a.validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email")
		default:
			msgs = append(msgs, fe.Field()+" is required")
		}
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, ", "))
}
