package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/views"
)

func runInventory(ctx context.Context, a *app, args []string) error {
	fs := a.flags("inventory")
	status := fs.String("status", "", "IN_STOCK, LOW_STOCK or OUT_OF_STOCK")
	restock := fs.Bool("restock", false, "only items that are low or out of stock")
	category := fs.String("category", "", "category name")
	search := fs.String("q", "", "search item and category names")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}

	filter := views.InventoryFilter{NeedsRestock: *restock, Search: *search}
	if *status != "" {
		st, err := clinic.ParseInventoryStatus(*status)
		if err != nil {
			return usagef("%v", err)
		}
		filter.Status = st
	}

	board, err := views.LoadInventoryBoard(ctx, a.api)
	if err != nil {
		return err
	}
	categories := make(map[clinic.ID]string, len(board.Categories))
	for _, c := range board.Categories {
		categories[c.ID] = c.Name
		if *category != "" && strings.EqualFold(c.Name, *category) {
			filter.CategoryID = c.ID
		}
	}
	if *category != "" && filter.CategoryID == "" {
		return fmt.Errorf("unknown category %q", *category)
	}
	units := make(map[clinic.ID]string, len(board.Units))
	for _, u := range board.Units {
		units[u.ID] = u.Name
	}

	items := views.FilterInventory(board.Items, filter)
	if len(items) == 0 {
		a.printf("%s\n", views.NoticeEmpty)
		return nil
	}
	t := a.table("ID", "NAME", "CATEGORY", "QTY", "MIN", "UNIT", "STATUS")
	for _, it := range items {
		cat, unit := categories[it.CategoryID], units[it.UnitID]
		if it.Category != nil {
			cat = it.Category.Name
		}
		if it.Unit != nil {
			unit = it.Unit.Name
		}
		t.row(it.ID.String(), it.Name, orDash(cat), qty(it.Quantity), qty(it.MinQuantity), orDash(unit), string(views.StockStatus(it)))
	}
	return t.flush()
}

func qty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func runPayments(ctx context.Context, a *app, args []string) error {
	if len(args) > 0 && args[0] == "add" {
		return addPayment(ctx, a, args[1:])
	}
	fs := a.flags("payments")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch fs.NArg() {
	case 0:
		return printBalances(ctx, a)
	case 1:
		return printAction(ctx, a, clinic.ID(fs.Arg(0)))
	}
	return usagef("expected at most one action id")
}

// printBalances lists every treatment course with what is still owed.
func printBalances(ctx context.Context, a *app) error {
	var (
		actions  []clinic.Action
		payments []clinic.Payment
	)
	err := views.LoadAll(ctx,
		func(ctx context.Context) (err error) {
			actions, err = a.api.Actions.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			payments, err = a.api.Payments.List(ctx)
			return err
		},
	)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		a.printf("%s\n", views.NoticeEmpty)
		return nil
	}

	byAction := make(map[clinic.ID][]clinic.Payment)
	for _, p := range payments {
		byAction[p.ActionID] = append(byAction[p.ActionID], p)
	}
	t := a.table("ID", "TREATMENT", "PATIENT", "TOTAL", "PAID", "BALANCE")
	for _, act := range actions {
		bill := views.Bill(act, byAction[act.ID])
		patient := act.PatientID.String()
		if act.Patient != nil {
			patient = act.Patient.FullName()
		}
		t.row(act.ID.String(), act.Name, orDash(patient), money(bill.Total), money(bill.Paid), money(bill.Balance))
	}
	return t.flush()
}

func printAction(ctx context.Context, a *app, id clinic.ID) error {
	board, err := views.LoadActionBoard(ctx, a.api, id)
	if err != nil {
		return err
	}
	a.printf("%s\n", board.Action.Name)
	if board.Action.Description != "" {
		a.printf("%s\n", board.Action.Description)
	}
	a.printf("\n")

	if len(board.Payments) == 0 {
		a.printf("%s\n", views.NoticeEmpty)
	} else {
		t := a.table("ID", "DATE", "METHOD", "AMOUNT")
		for _, p := range board.Payments {
			t.row(p.ID.String(), orDash(p.Date), orDash(p.Method), money(p.Amount))
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	b := board.Billing
	a.printf("\nTotal %s  Paid %s  Balance %s\n", money(b.Total), money(b.Paid), money(b.Balance))
	if b.Settled() {
		a.printf("Settled\n")
	}
	if len(board.Appointments) > 0 {
		a.printf("\nAppointments:\n")
		views.SortAppointments(board.Appointments, a.loc, false)
		for _, ap := range board.Appointments {
			a.printf("  %s %s\n", ap.Date, describe(ap))
		}
	}
	return nil
}

func addPayment(ctx context.Context, a *app, args []string) error {
	fs := a.flags("payments add")
	amount := fs.Float64("amount", 0, "amount paid")
	method := fs.String("method", "CASH", "CASH, CARD or TRANSFER")
	date := fs.String("date", "", "payment day, YYYY-MM-DD (default today)")
	notes := fs.String("notes", "", "free text")
	pos, err := parseWithArgs(fs, args, 1, "<action-id>")
	if err != nil {
		return err
	}
	if *amount <= 0 {
		return usagef("-amount must be positive")
	}
	if *date != "" {
		if _, err := parseDay(*date, a.loc); err != nil {
			return err
		}
	}
	p, err := a.api.Payments.Create(ctx, clinic.Payment{
		ActionID: clinic.ID(pos[0]),
		Amount:   *amount,
		Method:   strings.ToUpper(*method),
		Date:     *date,
		Notes:    *notes,
	})
	if err != nil {
		return err
	}
	a.printf("Payment %s of %s recorded\n", p.ID, money(p.Amount))
	return printAction(ctx, a, p.ActionID)
}

func runTasks(ctx context.Context, a *app, args []string) error {
	fs := a.flags("tasks")
	mine := fs.Bool("mine", false, "only tasks assigned to or created by me")
	status := fs.String("status", "", "status name")
	priority := fs.String("priority", "", "priority name")
	search := fs.String("q", "", "search title and description")
	all := fs.Bool("all", false, "include completed tasks")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}

	board, err := views.LoadTaskBoard(ctx, a.api, *mine)
	if err != nil {
		return err
	}
	if *status != "" && !knownName(*status, board.Statuses, func(s clinic.TaskStatus) string { return s.Name }) {
		return fmt.Errorf("unknown task status %q", *status)
	}
	if *priority != "" && !knownName(*priority, board.Priorities, func(p clinic.TaskPriority) string { return p.Name }) {
		return fmt.Errorf("unknown task priority %q", *priority)
	}

	tasks := views.FilterTasks(board.Tasks, views.TaskFilter{Status: *status, Priority: *priority, Search: *search})
	if !*all {
		open := tasks[:0]
		for _, tk := range tasks {
			if !tk.Completed {
				open = append(open, tk)
			}
		}
		tasks = open
	}
	if len(tasks) == 0 {
		a.printf("%s\n", views.NoticeEmpty)
		return nil
	}
	views.SortTasks(tasks)

	t := a.table("ID", "TITLE", "STATUS", "PRIORITY", "DUE", "ASSIGNEE")
	for _, tk := range tasks {
		var st, pr, who string
		if tk.Status != nil {
			st = tk.Status.Name
		}
		if tk.Priority != nil {
			pr = tk.Priority.Name
		}
		if tk.AssignedTo != nil {
			who = tk.AssignedTo.FullName()
		}
		t.row(tk.ID.String(), tk.Title, orDash(st), orDash(pr), orDash(tk.DueDate), orDash(who))
	}
	return t.flush()
}

func knownName[T any](name string, list []T, nameOf func(T) string) bool {
	for _, v := range list {
		if strings.EqualFold(nameOf(v), name) {
			return true
		}
	}
	return false
}

func runUsers(ctx context.Context, a *app, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "role":
			return changeRole(ctx, a, args[1:])
		case "roles":
			return listRoles(ctx, a)
		case "delete":
			return deleteUser(ctx, a, args[1:])
		}
	}
	fs := a.flags("users")
	role := fs.String("role", "", "PATIENT, DOCTOR, RECEPTIONIST or ADMIN")
	search := fs.String("q", "", "search name, email and phone")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}
	var r clinic.Role
	if *role != "" {
		parsed, err := clinic.ParseRole(*role)
		if err != nil {
			return usagef("%v", err)
		}
		r = parsed
	}

	res := views.Load(ctx, a.api.Admin.Users)
	if res.Err != nil {
		return res.Err
	}
	users := views.FilterUsers(res.Data, r, *search)
	if len(users) == 0 {
		a.printf("%s\n", views.NoticeEmpty)
		return nil
	}
	t := a.table("ID", "NAME", "EMAIL", "PHONE", "ROLE")
	for _, u := range users {
		t.row(u.ID.String(), u.FullName(), u.Email, orDash(u.Phone), string(u.Role))
	}
	return t.flush()
}

func changeRole(ctx context.Context, a *app, args []string) error {
	fs := a.flags("users role")
	pos, err := parseWithArgs(fs, args, 2, "<user-id>", "<role>")
	if err != nil {
		return err
	}
	role, err := clinic.ParseRole(pos[1])
	if err != nil {
		return usagef("%v", err)
	}
	u, err := a.api.Admin.ChangeRole(ctx, clinic.ID(pos[0]), role)
	if err != nil {
		return err
	}
	a.printf("%s is now %s\n", u.FullName(), u.Role)
	return nil
}

func listRoles(ctx context.Context, a *app) error {
	roles, err := a.api.Admin.Roles(ctx)
	if err != nil {
		return err
	}
	for _, r := range roles {
		a.printf("%s\n", r)
	}
	return nil
}

func deleteUser(ctx context.Context, a *app, args []string) error {
	fs := a.flags("users delete")
	pos, err := parseWithArgs(fs, args, 1, "<user-id>")
	if err != nil {
		return err
	}
	if err := a.api.Admin.DeleteUser(ctx, clinic.ID(pos[0])); err != nil {
		return err
	}
	a.printf("User %s deleted\n", pos[0])
	return nil
}
