// spindb is a single-user, single-process control plane for local
// database instances: create, start, stop, query, back up and restore
// one of nineteen supported database engines through one uniform
// command surface, without depending on any container runtime.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/integrii/flaggy"
	"github.com/samber/lo"

	"github.com/robertjbass/spindb/internal/app"
	"github.com/robertjbass/spindb/internal/containers"
	"github.com/robertjbass/spindb/internal/credentials"
	"github.com/robertjbass/spindb/internal/engine"
	"github.com/robertjbass/spindb/internal/model"
	"github.com/robertjbass/spindb/internal/retry"
	"github.com/robertjbass/spindb/internal/spinerr"
)

const defaultVersion = "unversioned"

var (
	commit  string
	version = defaultVersion
	date    string

	jsonOutput  bool
	assumeYes   bool
	debugFlag   bool
	rootFlag    string
)

func main() {
	updateBuildInfo()

	info := fmt.Sprintf("%s\nDate: %s\nCommit: %s\nOS: %s\nArch: %s", version, date, commit, runtime.GOOS, runtime.GOARCH)

	flaggy.SetName("spindb")
	flaggy.SetDescription("Create and manage local database instances across nineteen engines")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/robertjbass/spindb"
	flaggy.Bool(&jsonOutput, "", "json", "Emit machine-readable JSON instead of human-readable text")
	flaggy.Bool(&assumeYes, "y", "yes", "Assume yes to any confirmation prompt")
	flaggy.Bool(&debugFlag, "d", "debug", "Enable debug logging")
	flaggy.String(&rootFlag, "", "root", "Override the spindb root directory (default: SPINDB_HOME or platform config dir)")
	flaggy.SetVersion(info)

	createCmd, createArgs := buildCreateCmd()
	listCmd, listArgs := buildListCmd()
	infoCmd, infoArgs := buildInfoCmd()
	startCmd, startArgs := buildStartCmd()
	stopCmd, stopArgs := buildStopCmd()
	deleteCmd, deleteArgs := buildDeleteCmd()
	renameCmd, renameArgs := buildRenameCmd()
	runCmd, runArgs := buildRunCmd()
	queryCmd, queryArgs := buildQueryCmd()
	backupCmd, backupArgs := buildBackupCmd()
	restoreCmd, restoreArgs := buildRestoreCmd()
	cloneCmd, cloneArgs := buildCloneCmd()
	enginesCmd := flaggy.NewSubcommand("engines")
	enginesCmd.Description = "List supported database engines"
	enginesListCmd := flaggy.NewSubcommand("list")
	enginesCmd.AttachSubcommand(enginesListCmd, 1)

	usersCmd := flaggy.NewSubcommand("users")
	usersCmd.Description = "Manage per-container credentials"
	usersCreateCmd, usersCreateArgs := buildUsersCreateCmd()
	usersListCmd, usersListArgs := buildUsersListCmd()
	usersCmd.AttachSubcommand(usersCreateCmd, 1)
	usersCmd.AttachSubcommand(usersListCmd, 1)

	flaggy.AttachSubcommand(createCmd, 1)
	flaggy.AttachSubcommand(listCmd, 1)
	flaggy.AttachSubcommand(infoCmd, 1)
	flaggy.AttachSubcommand(startCmd, 1)
	flaggy.AttachSubcommand(stopCmd, 1)
	flaggy.AttachSubcommand(deleteCmd, 1)
	flaggy.AttachSubcommand(renameCmd, 1)
	flaggy.AttachSubcommand(runCmd, 1)
	flaggy.AttachSubcommand(queryCmd, 1)
	flaggy.AttachSubcommand(backupCmd, 1)
	flaggy.AttachSubcommand(restoreCmd, 1)
	flaggy.AttachSubcommand(cloneCmd, 1)
	flaggy.AttachSubcommand(enginesCmd, 1)
	flaggy.AttachSubcommand(usersCmd, 1)

	flaggy.Parse()

	a, err := app.New(app.Options{Root: rootFlag, Debug: debugFlag, Version: version})
	if err != nil {
		fail(err)
	}

	ctx := context.Background()

	switch {
	case createCmd.Used:
		err = runCreate(ctx, a, createArgs)
	case listCmd.Used:
		err = runList(a, listArgs)
	case infoCmd.Used:
		err = runInfo(a, infoArgs)
	case startCmd.Used:
		err = runStart(ctx, a, startArgs)
	case stopCmd.Used:
		err = runStop(ctx, a, stopArgs)
	case deleteCmd.Used:
		err = runDelete(a, deleteArgs)
	case renameCmd.Used:
		err = runRename(a, renameArgs)
	case runCmd.Used:
		err = runRunScript(ctx, a, runArgs)
	case queryCmd.Used:
		err = runQuery(ctx, a, queryArgs)
	case backupCmd.Used:
		err = runBackup(ctx, a, backupArgs)
	case restoreCmd.Used:
		err = runRestore(ctx, a, restoreArgs)
	case cloneCmd.Used:
		err = runClone(ctx, a, cloneArgs)
	case enginesListCmd.Used:
		err = runEnginesList(a)
	case usersCreateCmd.Used:
		err = runUsersCreate(ctx, a, usersCreateArgs)
	case usersListCmd.Used:
		err = runUsersList(a, usersListArgs)
	default:
		flaggy.ShowHelp("")
		os.Exit(1)
	}

	if err != nil {
		fail(err)
	}
}

// fail renders err per spec.md §6: a single-line message to stderr in
// text mode, or {"error": "<message>"} to stdout in JSON mode, exit 1.
func fail(err error) {
	if jsonOutput {
		b, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(b))
	} else {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
	}
	os.Exit(1)
}

func requireArg(value, flagName string) error {
	if value == "" {
		return spinerr.New(spinerr.InvalidInput, "missing required argument: "+flagName+" (non-interactive mode never prompts)")
	}
	return nil
}

func printResult(v interface{}, text string) {
	if jsonOutput {
		b, _ := json.Marshal(v)
		fmt.Println(string(b))
		return
	}
	fmt.Println(text)
}

type createArgsT struct {
	name, engineName, version, database, port string
}

func buildCreateCmd() (*flaggy.Subcommand, *createArgsT) {
	cmd := flaggy.NewSubcommand("create")
	cmd.Description = "Create a new database container"
	a := &createArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	cmd.String(&a.version, "", "version", "engine version")
	cmd.String(&a.database, "", "database", "initial database name")
	cmd.String(&a.port, "p", "port", "port to allocate")
	return cmd, a
}

func runCreate(ctx context.Context, a *app.App, args *createArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	port := 0
	if args.port != "" {
		p, err := parsePort(args.port)
		if err != nil {
			return err
		}
		port = p
	}
	cfg, err := a.Containers.Create(args.name, args.engineName, containers.CreateOptions{
		Version: args.version, Port: port, Database: args.database,
	})
	if err != nil {
		return err
	}
	printResult(cfg, fmt.Sprintf("created %s (%s)", cfg.Name, cfg.Engine))
	return nil
}

type listArgsT struct{ engineName string }

func buildListCmd() (*flaggy.Subcommand, *listArgsT) {
	cmd := flaggy.NewSubcommand("list")
	cmd.Description = "List database containers"
	a := &listArgsT{}
	cmd.String(&a.engineName, "e", "engine", "restrict to one engine")
	return cmd, a
}

func runList(a *app.App, args *listArgsT) error {
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	cfgs, err := a.Containers.List(args.engineName)
	if err != nil {
		return err
	}
	if jsonOutput {
		printResult(cfgs, "")
		return nil
	}
	for _, c := range cfgs {
		fmt.Printf("%s\t%s\t%s\tport=%d\n", c.Name, c.Engine, c.Status, c.Port)
	}
	return nil
}

type infoArgsT struct{ name, engineName string }

func buildInfoCmd() (*flaggy.Subcommand, *infoArgsT) {
	cmd := flaggy.NewSubcommand("info")
	cmd.Description = "Show a container's configuration"
	a := &infoArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	return cmd, a
}

func runInfo(a *app.App, args *infoArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	cfg, ok, err := a.Containers.GetConfig(args.name, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.name)
	}
	printResult(cfg, fmt.Sprintf("%s (%s) status=%s port=%d", cfg.Name, cfg.Engine, cfg.Status, cfg.Port))
	return nil
}

type startArgsT struct{ name, engineName string }

func buildStartCmd() (*flaggy.Subcommand, *startArgsT) {
	cmd := flaggy.NewSubcommand("start")
	cmd.Description = "Start a database container, recovering from port collisions"
	a := &startArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	return cmd, a
}

func runStart(ctx context.Context, a *app.App, args *startArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	cfg, ok, err := a.Containers.GetConfig(args.name, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.name)
	}
	adapter, err := a.Registry.Lookup(args.engineName)
	if err != nil {
		return err
	}

	progress := func(msg string) {
		if !jsonOutput {
			fmt.Println(msg)
		}
	}

	result := retry.StartWithRetry(ctx, adapter, cfg, progress, retry.Options{
		OnPortChange: func(oldPort, newPort int) {
			if !jsonOutput {
				fmt.Printf("port %d in use, retrying on %d\n", oldPort, newPort)
			}
		},
		PersistPort: func(newPort int) error {
			_, err := a.Containers.UpdateConfig(args.name, args.engineName, containers.Patch{Port: &newPort})
			return err
		},
	})
	if !result.Success {
		return result.Err
	}

	running := model.StatusRunning
	if _, err := a.Containers.UpdateConfig(args.name, args.engineName, containers.Patch{Status: &running}); err != nil {
		return err
	}
	printResult(result, fmt.Sprintf("started %s on port %d", args.name, result.FinalPort))
	return nil
}

type stopArgsT struct{ name, engineName string }

func buildStopCmd() (*flaggy.Subcommand, *stopArgsT) {
	cmd := flaggy.NewSubcommand("stop")
	cmd.Description = "Stop a database container"
	a := &stopArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	return cmd, a
}

func runStop(ctx context.Context, a *app.App, args *stopArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	cfg, ok, err := a.Containers.GetConfig(args.name, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.name)
	}
	adapter, err := a.Registry.Lookup(args.engineName)
	if err != nil {
		return err
	}
	if err := adapter.Stop(ctx, cfg); err != nil {
		return err
	}
	stopped := model.StatusStopped
	if _, err := a.Containers.UpdateConfig(args.name, args.engineName, containers.Patch{Status: &stopped}); err != nil {
		return err
	}
	printResult(map[string]string{"name": args.name, "status": "stopped"}, "stopped "+args.name)
	return nil
}

type deleteArgsT struct {
	name, engineName string
	force            bool
}

func buildDeleteCmd() (*flaggy.Subcommand, *deleteArgsT) {
	cmd := flaggy.NewSubcommand("delete")
	cmd.ShortName = "rm"
	cmd.Description = "Delete a database container (alias: rm)"
	a := &deleteArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	cmd.Bool(&a.force, "f", "force", "delete even if running")
	return cmd, a
}

func runDelete(a *app.App, args *deleteArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	if !assumeYes && !jsonOutput {
		return spinerr.New(spinerr.InvalidInput, "delete requires -y/--yes in non-interactive mode")
	}
	if err := a.Containers.Delete(args.name, args.engineName, args.force); err != nil {
		return err
	}
	printResult(map[string]string{"name": args.name, "status": "deleted"}, "deleted "+args.name)
	return nil
}

type renameArgsT struct{ oldName, newName, engineName string }

func buildRenameCmd() (*flaggy.Subcommand, *renameArgsT) {
	cmd := flaggy.NewSubcommand("rename")
	cmd.Description = "Rename a stopped database container"
	a := &renameArgsT{}
	cmd.AddPositionalValue(&a.oldName, "oldName", 1, true, "current name")
	cmd.AddPositionalValue(&a.newName, "newName", 2, true, "new name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	return cmd, a
}

func runRename(a *app.App, args *renameArgsT) error {
	if err := requireArg(args.oldName, "oldName"); err != nil {
		return err
	}
	if err := requireArg(args.newName, "newName"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	cfg, err := a.Containers.Rename(args.oldName, args.newName, args.engineName)
	if err != nil {
		return err
	}
	printResult(cfg, fmt.Sprintf("renamed %s to %s", args.oldName, args.newName))
	return nil
}

type runArgsT struct {
	name, engineName, file, sql, database string
}

func buildRunCmd() (*flaggy.Subcommand, *runArgsT) {
	cmd := flaggy.NewSubcommand("run")
	cmd.Description = "Run a SQL/script file or inline statement against a container"
	a := &runArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	cmd.String(&a.file, "", "file", "script file to run")
	cmd.String(&a.sql, "", "sql", "inline statement to run")
	cmd.String(&a.database, "", "database", "target database")
	return cmd, a
}

func runRunScript(ctx context.Context, a *app.App, args *runArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	cfg, ok, err := a.Containers.GetConfig(args.name, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.name)
	}
	adapter, err := a.Registry.Lookup(args.engineName)
	if err != nil {
		return err
	}
	if err := adapter.RunScript(ctx, cfg, engine.ScriptInput{File: args.file, SQL: args.sql, Database: args.database}); err != nil {
		return err
	}
	printResult(map[string]string{"name": args.name, "status": "ok"}, "ran script against "+args.name)
	return nil
}

type queryArgsT struct{ name, engineName, sql, database string }

func buildQueryCmd() (*flaggy.Subcommand, *queryArgsT) {
	cmd := flaggy.NewSubcommand("query")
	cmd.Description = "Execute a query and print tabular results"
	a := &queryArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	cmd.String(&a.sql, "q", "sql", "query to execute")
	cmd.String(&a.database, "", "database", "target database")
	return cmd, a
}

func runQuery(ctx context.Context, a *app.App, args *queryArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	if err := requireArg(args.sql, "--sql"); err != nil {
		return err
	}
	cfg, ok, err := a.Containers.GetConfig(args.name, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.name)
	}
	adapter, err := a.Registry.Lookup(args.engineName)
	if err != nil {
		return err
	}
	result, err := adapter.ExecuteQuery(ctx, cfg, args.sql, engine.QueryOptions{Database: args.database})
	if err != nil {
		return err
	}
	if jsonOutput {
		printResult(result, "")
		return nil
	}
	fmt.Println(join(result.Columns, "\t"))
	for _, row := range result.Rows {
		fmt.Println(join(row, "\t"))
	}
	return nil
}

type backupArgsT struct {
	name, engineName, outDir, format string
}

func buildBackupCmd() (*flaggy.Subcommand, *backupArgsT) {
	cmd := flaggy.NewSubcommand("backup")
	cmd.Description = "Back up a container to a file"
	a := &backupArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	cmd.String(&a.outDir, "o", "out", "output directory")
	cmd.String(&a.format, "", "format", "backup format (engine default if omitted)")
	return cmd, a
}

func runBackup(ctx context.Context, a *app.App, args *backupArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	if err := requireArg(args.outDir, "--out"); err != nil {
		return err
	}
	cfg, ok, err := a.Containers.GetConfig(args.name, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.name)
	}
	adapter, err := a.Registry.Lookup(args.engineName)
	if err != nil {
		return err
	}
	result, err := a.Backup.Backup(ctx, adapter, cfg, args.outDir, engine.BackupOptions{Format: args.format})
	if err != nil {
		return err
	}
	printResult(result, fmt.Sprintf("wrote %s (%d bytes)", result.Path, result.Size))
	return nil
}

type restoreArgsT struct {
	name, engineName, inPath, database, format string
}

func buildRestoreCmd() (*flaggy.Subcommand, *restoreArgsT) {
	cmd := flaggy.NewSubcommand("restore")
	cmd.Description = "Restore a container from a backup file"
	a := &restoreArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.AddPositionalValue(&a.inPath, "file", 2, true, "backup file")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	cmd.String(&a.database, "", "database", "target database")
	cmd.String(&a.format, "", "format", "force a format instead of detecting it")
	return cmd, a
}

func runRestore(ctx context.Context, a *app.App, args *restoreArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.inPath, "file"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	cfg, ok, err := a.Containers.GetConfig(args.name, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.name)
	}
	adapter, err := a.Registry.Lookup(args.engineName)
	if err != nil {
		return err
	}
	result, err := a.Backup.Restore(ctx, adapter, cfg, args.inPath, engine.RestoreOptions{Database: args.database, Format: args.format})
	if err != nil {
		return err
	}
	printResult(result, "restored "+args.name+" from "+args.inPath)
	return nil
}

type cloneArgsT struct {
	sourceName, targetName, engineName, format string
}

func buildCloneCmd() (*flaggy.Subcommand, *cloneArgsT) {
	cmd := flaggy.NewSubcommand("clone")
	cmd.Description = "Clone one container into another via backup and restore"
	a := &cloneArgsT{}
	cmd.AddPositionalValue(&a.sourceName, "source", 1, true, "source container")
	cmd.AddPositionalValue(&a.targetName, "target", 2, true, "target container")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	cmd.String(&a.format, "", "format", "intermediate backup format")
	return cmd, a
}

func runClone(ctx context.Context, a *app.App, args *cloneArgsT) error {
	if err := requireArg(args.sourceName, "source"); err != nil {
		return err
	}
	if err := requireArg(args.targetName, "target"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	source, ok, err := a.Containers.GetConfig(args.sourceName, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.sourceName)
	}
	target, ok, err := a.Containers.GetConfig(args.targetName, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.targetName)
	}
	adapter, err := a.Registry.Lookup(args.engineName)
	if err != nil {
		return err
	}
	result, err := a.Backup.Clone(ctx, adapter, source, target, engine.BackupOptions{Format: args.format})
	if err != nil {
		return err
	}
	clonedFrom := args.sourceName
	if _, err := a.Containers.UpdateConfig(args.targetName, args.engineName, containers.Patch{ClonedFrom: &clonedFrom}); err != nil {
		return err
	}
	printResult(result, fmt.Sprintf("cloned %s into %s", args.sourceName, args.targetName))
	return nil
}

func runEnginesList(a *app.App) error {
	adapters := a.Registry.List()
	names := make([]string, len(adapters))
	for i, ad := range adapters {
		names[i] = ad.Name()
	}
	if jsonOutput {
		printResult(names, "")
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

type usersCreateArgsT struct {
	name, engineName, username, password, database string
}

func buildUsersCreateCmd() (*flaggy.Subcommand, *usersCreateArgsT) {
	cmd := flaggy.NewSubcommand("create")
	cmd.Description = "Create a database user and save its credentials"
	a := &usersCreateArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	cmd.String(&a.username, "u", "username", "username (default: engine-specific)")
	cmd.String(&a.password, "", "password", "password (generated if omitted)")
	cmd.String(&a.database, "", "database", "target database")
	return cmd, a
}

func runUsersCreate(ctx context.Context, a *app.App, args *usersCreateArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	cfg, ok, err := a.Containers.GetConfig(args.name, args.engineName)
	if err != nil {
		return err
	}
	if !ok {
		return spinerr.New(spinerr.NotFound, "container not found: "+args.name)
	}
	adapter, err := a.Registry.Lookup(args.engineName)
	if err != nil {
		return err
	}

	username := args.username
	if username == "" {
		username = credentials.DefaultUsername(args.engineName)
	}
	password := args.password
	if password == "" {
		password, err = credentials.GeneratePassword(credentials.GeneratePasswordOptions{})
		if err != nil {
			return err
		}
	}

	cred, err := adapter.CreateUser(ctx, cfg, engine.CreateUserOptions{Username: username, Password: password, Database: args.database})
	if err != nil {
		return err
	}

	bundle := credentials.Bundle{
		Kind:       "password",
		Username:   username,
		DBUser:     cred.Username,
		DBPassword: cred.Password,
		DBHost:     cred.Host,
		DBPort:     cred.Port,
		DBName:     cred.Database,
		DBURL:      cred.URL,
	}
	if cred.Kind == "apikey" {
		bundle = credentials.Bundle{
			Kind:       "apikey",
			Username:   username,
			APIKeyName: cred.APIKeyName,
			APIKey:     cred.APIKey,
			APIURL:     cred.APIURL,
		}
	}
	path, err := a.Credentials.Save(args.name, args.engineName, bundle)
	if err != nil {
		return err
	}
	printResult(map[string]string{"username": username, "path": path}, "saved credentials to "+path)
	return nil
}

type usersListArgsT struct{ name, engineName string }

func buildUsersListCmd() (*flaggy.Subcommand, *usersListArgsT) {
	cmd := flaggy.NewSubcommand("list")
	cmd.Description = "List saved usernames for a container"
	a := &usersListArgsT{}
	cmd.AddPositionalValue(&a.name, "name", 1, true, "container name")
	cmd.String(&a.engineName, "e", "engine", "database engine")
	return cmd, a
}

func runUsersList(a *app.App, args *usersListArgsT) error {
	if err := requireArg(args.name, "name"); err != nil {
		return err
	}
	if err := requireArg(args.engineName, "--engine"); err != nil {
		return err
	}
	usernames, err := a.Credentials.List(args.name, args.engineName)
	if err != nil {
		return err
	}
	if jsonOutput {
		printResult(usernames, "")
		return nil
	}
	for _, u := range usernames {
		fmt.Println(u)
	}
	return nil
}

func parsePort(s string) (int, error) {
	var port int
	if _, err := fmt.Sscanf(s, "%d", &port); err != nil {
		return 0, spinerr.New(spinerr.InvalidInput, "invalid port: "+s)
	}
	return port, nil
}

func join(items []string, sep string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += sep
		}
		out += item
	}
	return out
}

func updateBuildInfo() {
	if version == defaultVersion {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			revision, found := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.revision"
			})
			if found {
				commit = revision.Value
				if len(revision.Value) >= 7 {
					version = revision.Value[:7]
				} else {
					version = revision.Value
				}
			}
			buildTime, found := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.time"
			})
			if found {
				date = buildTime.Value
			}
		}
	}
}
