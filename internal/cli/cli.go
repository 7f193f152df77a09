// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/ftree/internal/commands"
	"github.com/temirov/ftree/internal/config"
	"github.com/temirov/ftree/internal/output"
	"github.com/temirov/ftree/internal/services/clipboard"
	"github.com/temirov/ftree/internal/services/sink"
	"github.com/temirov/ftree/internal/tokenizer"
	"github.com/temirov/ftree/internal/types"
	"github.com/temirov/ftree/internal/utils"
)

const (
	exclusionFlagName    = "e"
	noGitignoreFlagName  = "no-gitignore"
	formatFlagName       = "format"
	depthFlagName        = "depth"
	configFlagName       = "config"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	globalFlagName       = "global"
	forceFlagName        = "force"
	debugFlagName        = "debug"
	versionFlagName      = "version"
	versionTemplate      = "ftree version: %s\n"
	defaultPath          = "."
	rootUse              = "ftree"
	rootShortDescription = "ftree command line interface"
	rootLongDescription  = `ftree renders the directory tree of one or more folders.
Entries matched by the nearest .gitignore or by -e patterns are left out, and directories
that end up empty are pruned. Use --format to select text, markdown, or json output.`

	treeUse              = "tree [paths...]"
	saveUse              = "save [paths...]"
	copyUse              = "copy [paths...]"
	initUse              = "init"
	treeAlias            = "t"
	saveAlias            = "s"
	copyAlias            = "c"
	treeShortDescription = "display directory tree (" + treeAlias + ")"
	saveShortDescription = "save directory tree to a file (" + saveAlias + ")"
	copyShortDescription = "copy directory tree to the clipboard (" + copyAlias + ")"
	initShortDescription = "write a default configuration file"

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Print the filtered directory tree of each path.
Several paths are rendered in argument order, separated by a blank line.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Render the current directory as Markdown
  ftree tree --format markdown

  # Limit the tree to two levels and exclude the vendor directory
  ftree tree --depth 2 -e vendor/ .`

	// saveLongDescription provides detailed help for the save command.
	saveLongDescription = `Write the rendered tree to a file.
Without --output the file is tree.txt inside the first path.`
	// saveUsageExample demonstrates save command usage.
	saveUsageExample = `  # Save a JSON tree next to the sources
  ftree save --format json -o tree.json ./src`

	// copyLongDescription provides detailed help for the copy command.
	copyLongDescription = `Copy the rendered tree to the system clipboard.`
	// copyUsageExample demonstrates copy command usage.
	copyUsageExample = `  # Copy a Markdown tree without applying .gitignore
  ftree copy --format markdown --no-gitignore`

	// initLongDescription provides detailed help for the init command.
	initLongDescription = `Write the default configuration to ./.ftree.yaml, or to ~/.ftree/config.yaml with --global.`

	exclusionFlagDescription        = "exclude path pattern (gitignore syntax, repeatable)"
	disableGitignoreFlagDescription = "do not use .gitignore"
	formatFlagDescription           = "output format: text, markdown, or json"
	depthFlagDescription            = "maximum depth to expand (-1 for unlimited)"
	configFlagDescription           = "configuration file to use instead of ./.ftree.yaml"
	tokensFlagDescription           = "log an estimated token count of the rendering"
	modelFlagDescription            = "tokenizer model to use for token counting"
	outputFlagDescription           = "file to write the tree to"
	globalFlagDescription           = "write the global configuration file"
	forceFlagDescription            = "overwrite an existing configuration file"
	debugFlagDescription            = "enable debug logging"
	versionFlagDescription          = "display application version"
	defaultTokenizerModelName       = "gpt-4o"

	configurationWrittenFormat  = "Configuration written to %s\n"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorInvalidDepthFormat     = "invalid depth %d: use -1 for unlimited or a value of 0 or more"
	errorNotDirectoryFormat     = "%w: %s"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNoValidPaths indicates that all paths are invalid.
	errorNoValidPaths = "no valid paths"

	logMessageTokenCount        = "estimated tokens"
	logMessageTokenCountFailure = "failed to count tokens"
)

// application carries the collaborators shared by every command.
type application struct {
	logger           *zap.Logger
	stdout           io.Writer
	stderr           io.Writer
	copier           clipboard.Copier
	newCounter       func(tokenizer.Config) (tokenizer.Counter, string, error)
	workingDirectory string
}

func newApplication(logger *zap.Logger, stdout io.Writer, stderr io.Writer, copier clipboard.Copier) *application {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &application{
		logger:     logger,
		stdout:     stdout,
		stderr:     stderr,
		copier:     copier,
		newCounter: tokenizer.NewCounter,
	}
}

// Execute runs the ftree application.
func Execute(logger *zap.Logger) error {
	app := newApplication(logger, os.Stdout, os.Stderr, clipboard.NewService())
	rootCommand := app.createRootCommand()
	rootCommand.SetArgs(normalizeToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func (app *application) createRootCommand() *cobra.Command {
	var showVersion bool
	var debugEnabled bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, printErr := fmt.Fprintf(app.stdout, versionTemplate, utils.GetApplicationVersion())
				return printErr
			}
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if !debugEnabled {
				return nil
			}
			debugLogger, loggerError := utils.NewApplicationLogger(true)
			if loggerError != nil {
				return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
			}
			app.logger = debugLogger
			return nil
		},
	}
	rootCommand.SetOut(app.stdout)
	rootCommand.SetErr(app.stderr)
	registerToggleFlag(rootCommand.Flags(), &showVersion, versionFlagName, false, versionFlagDescription)
	registerToggleFlag(rootCommand.PersistentFlags(), &debugEnabled, debugFlagName, false, debugFlagDescription)
	rootCommand.AddCommand(
		app.createTreeCommand(),
		app.createSaveCommand(),
		app.createCopyCommand(),
		app.createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// treeFlags stores the flags shared by the tree, save and copy commands.
type treeFlags struct {
	format            string
	depth             int
	exclusionPatterns []string
	disableGitignore  bool
	configPath        string
	tokens            bool
	model             string
}

// addTreeFlags registers the build and rendering flags on the command.
func addTreeFlags(command *cobra.Command, flags *treeFlags) {
	flagSet := command.Flags()
	registerFormatFlag(flagSet, &flags.format, formatFlagName, formatFlagDescription)
	flagSet.IntVar(&flags.depth, depthFlagName, types.UnlimitedDepth, depthFlagDescription)
	flagSet.StringArrayVarP(&flags.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerToggleFlag(flagSet, &flags.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	flagSet.StringVar(&flags.configPath, configFlagName, utils.EmptyString, configFlagDescription)
	registerToggleFlag(flagSet, &flags.tokens, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&flags.model, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
}

// createTreeCommand returns the tree subcommand.
func (app *application) createTreeCommand() *cobra.Command {
	var flags treeFlags
	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.runTreeCommand(command, arguments, &flags, func([]types.ValidatedPath) sink.Sink {
				return sink.NewDisplay(app.stdout)
			})
		},
	}
	addTreeFlags(treeCommand, &flags)
	return treeCommand
}

// createSaveCommand returns the save subcommand.
func (app *application) createSaveCommand() *cobra.Command {
	var flags treeFlags
	var outputPath string
	saveCommand := &cobra.Command{
		Use:     saveUse,
		Aliases: []string{saveAlias},
		Short:   saveShortDescription,
		Long:    saveLongDescription,
		Example: saveUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.runTreeCommand(command, arguments, &flags, func(roots []types.ValidatedPath) sink.Sink {
				destination := outputPath
				if destination == utils.EmptyString {
					destination = filepath.Join(roots[0].AbsolutePath, utils.DefaultSaveFileName)
				} else if !filepath.IsAbs(destination) && app.workingDirectory != utils.EmptyString {
					destination = filepath.Join(app.workingDirectory, destination)
				}
				return sink.NewFile(destination, app.stderr)
			})
		},
	}
	addTreeFlags(saveCommand, &flags)
	saveCommand.Flags().StringVarP(&outputPath, outputFlagName, outputFlagShorthand, utils.EmptyString, outputFlagDescription)
	return saveCommand
}

// createCopyCommand returns the copy subcommand.
func (app *application) createCopyCommand() *cobra.Command {
	var flags treeFlags
	copyCommand := &cobra.Command{
		Use:     copyUse,
		Aliases: []string{copyAlias},
		Short:   copyShortDescription,
		Long:    copyLongDescription,
		Example: copyUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.runTreeCommand(command, arguments, &flags, func([]types.ValidatedPath) sink.Sink {
				return sink.NewClipboard(app.copier, app.stderr)
			})
		},
	}
	addTreeFlags(copyCommand, &flags)
	return copyCommand
}

// createInitCommand returns the init subcommand.
func (app *application) createInitCommand() *cobra.Command {
	var globalTarget bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: app.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			color.New(color.FgGreen).Fprintf(app.stderr, configurationWrittenFormat, destinationPath)
			return nil
		},
	}
	registerToggleFlag(initCommand.Flags(), &globalTarget, globalFlagName, false, globalFlagDescription)
	registerToggleFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runTreeCommand builds every requested root, renders them together and hands the
// rendering to the sink chosen for the validated roots. Nothing is delivered when any root fails.
func (app *application) runTreeCommand(
	command *cobra.Command,
	arguments []string,
	flags *treeFlags,
	destination func([]types.ValidatedPath) sink.Sink,
) error {
	options, optionsError := app.resolveTreeOptions(command, flags)
	if optionsError != nil {
		return optionsError
	}
	if len(arguments) == 0 {
		arguments = []string{defaultPath}
	}
	validatedPaths, pathValidationError := app.resolveAndValidatePaths(arguments)
	if pathValidationError != nil {
		return pathValidationError
	}
	for _, validatedPath := range validatedPaths {
		if !validatedPath.IsDir {
			return fmt.Errorf(errorNotDirectoryFormat, commands.ErrNotDirectory, validatedPath.AbsolutePath)
		}
	}

	roots, buildError := app.buildTrees(command.Context(), validatedPaths, options)
	if buildError != nil {
		return buildError
	}
	rendering, renderError := output.RenderAll(roots, options.Format)
	if renderError != nil {
		return renderError
	}
	if flags.tokens {
		app.reportTokens(rendering, flags.model)
	}
	return destination(validatedPaths).Deliver(rendering)
}

// resolveTreeOptions layers configuration files and explicitly set flags over the defaults.
// Exclude patterns from flags are appended after configured ones so they take precedence.
func (app *application) resolveTreeOptions(command *cobra.Command, flags *treeFlags) (types.TreeOptions, error) {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: app.workingDirectory,
		ExplicitFilePath: flags.configPath,
	})
	if configurationError != nil {
		return types.TreeOptions{}, configurationError
	}
	options := applicationConfiguration.Tree.TreeOptions()

	flagSet := command.Flags()
	if flagSet.Changed(formatFlagName) {
		options.Format = flags.format
	}
	if flagSet.Changed(depthFlagName) {
		options.MaxDepth = flags.depth
	}
	if flagSet.Changed(noGitignoreFlagName) {
		options.UseGitignore = !flags.disableGitignore
	}
	options.ExcludePatterns = utils.DeduplicatePatterns(append(options.ExcludePatterns, flags.exclusionPatterns...))

	if options.MaxDepth < types.UnlimitedDepth {
		return types.TreeOptions{}, fmt.Errorf(errorInvalidDepthFormat, options.MaxDepth)
	}
	return options, nil
}

// buildTrees builds each root independently and returns the trees in input order.
func (app *application) buildTrees(ctx context.Context, validatedPaths []types.ValidatedPath, options types.TreeOptions) ([]*types.TreeNode, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	roots := make([]*types.TreeNode, len(validatedPaths))
	group, groupContext := errgroup.WithContext(ctx)
	for index, validatedPath := range validatedPaths {
		index, validatedPath := index, validatedPath
		group.Go(func() error {
			if groupContext.Err() != nil {
				return groupContext.Err()
			}
			root, buildError := commands.NewTreeBuilder(options, app.logger).Build(validatedPath.AbsolutePath)
			if buildError != nil {
				return buildError
			}
			roots[index] = root
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return roots, nil
}

// reportTokens logs the estimated token count of the rendering. Counting failures are only logged.
func (app *application) reportTokens(rendering string, model string) {
	counter, resolvedModel, counterError := app.newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		app.logger.Warn(logMessageTokenCountFailure, zap.Error(counterError))
		return
	}
	tokenCount, countError := tokenizer.Count(counter, rendering)
	if countError != nil {
		app.logger.Warn(logMessageTokenCountFailure, zap.String("model", resolvedModel), zap.Error(countError))
		return
	}
	app.logger.Info(logMessageTokenCount, zap.Int("tokens", tokenCount), zap.String("model", resolvedModel), zap.String("encoding", counter.Name()))
}

// resolveAndValidatePaths converts input paths to absolute form and validates their existence.
// Relative paths are resolved against the working directory; duplicates are collapsed.
func (app *application) resolveAndValidatePaths(inputs []string) ([]types.ValidatedPath, error) {
	workingDirectory := app.workingDirectory
	if workingDirectory == utils.EmptyString {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return nil, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		absolutePath := inputPath
		if !filepath.IsAbs(absolutePath) {
			absolutePath = filepath.Join(workingDirectory, inputPath)
		}
		absolutePath, absolutePathError := filepath.Abs(absolutePath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{AbsolutePath: cleanPath, IsDir: info.IsDir()})
	}
	if len(result) == 0 {
		return nil, errors.New(errorNoValidPaths)
	}
	return result, nil
}
