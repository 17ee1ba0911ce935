package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/aleksmv/userdesk/internal/client/services"
)

// admin fetches the user-management facade for the current session. The
// role is evaluated on every command, not captured once at startup, so a
// role change takes effect immediately.
func (a *App) admin() (services.AdminService, error) {
	svc, err := a.auth.Admin()
	if err != nil {
		printlnFn("Not allowed:", err.Error())
		return nil, err
	}
	return svc, nil
}

// ListUsers prints all user records as a table.
func (a *App) ListUsers(ctx context.Context) error {
	svc, err := a.admin()
	if err != nil {
		return err
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tPHONE\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Phone, u.Role)
	}
	return w.Flush()
}

// AddUser prompts for the new record's fields and creates it. An empty
// password gets a generated default, which is echoed back so the operator
// can hand it over.
func (a *App) AddUser(ctx context.Context) error {
	svc, err := a.admin()
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role (default USER)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSimpleText(a.reader, "Enter password (empty to generate)", os.Stdout)
	if err != nil {
		return err
	}

	generated := false
	if password == "" {
		password = uuid.NewString()
		generated = true
	}

	req := services.CreateUserRequest{Name: name, Email: email, Password: password, Phone: phone, Role: strings.ToUpper(role)}
	created, err := svc.CreateUser(ctx, req)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn("Created user", created.ID)
	if generated {
		printlnFn("Generated password:", password)
	}
	return nil
}

// EditUser prompts for a user id and new field values; empty answers keep
// the current value. The password is only sent when a new one was typed.
func (a *App) EditUser(ctx context.Context) error {
	svc, err := a.admin()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "New phone (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "New role (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSimpleText(a.reader, "New password (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	req := services.UpdateUserRequest{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Role:     strings.ToUpper(role),
		Password: password,
	}
	updated, err := svc.UpdateUser(ctx, id, req)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn("Updated user", updated.ID)
	return nil
}

// DeleteUser prompts for a user id, confirms, and deletes the record.
func (a *App) DeleteUser(ctx context.Context) error {
	svc, err := a.admin()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Delete user %s? (y/N)", id), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "y") {
		printlnFn("Cancelled")
		return nil
	}

	if err := svc.DeleteUser(ctx, id); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn("Deleted user", id)
	return nil
}
