// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/scanfiles/internal/config"
	"github.com/temirov/scanfiles/internal/output"
	"github.com/temirov/scanfiles/internal/rules"
	"github.com/temirov/scanfiles/internal/scanner"
	"github.com/temirov/scanfiles/internal/services/clipboard"
	"github.com/temirov/scanfiles/internal/tokenizer"
	"github.com/temirov/scanfiles/internal/types"
	"github.com/temirov/scanfiles/internal/utils"
)

const (
	ignoreFlagName   = "ignore"
	ignoreFlagShort  = "i"
	emojiFlagName    = "emoji"
	emojiFlagShort   = "e"
	formatFlagName   = "format"
	outputFlagName   = "output"
	outputFlagShort  = "o"
	maxDepthFlagName = "max-depth"
	copyFlagName     = "copy"
	tokensFlagName   = "tokens"
	modelFlagName    = "model"
	configFlagName   = "config"
	versionFlagName  = "version"
	versionTemplate  = "scanfiles version: %s\n"
	defaultPath      = "."

	rootUse              = "scanfiles"
	rootShortDescription = "scanfiles command line interface"
	rootLongDescription  = `scanfiles renders a directory tree as indented text suitable for sharing
with LLMs or documentation. Build artifacts, caches, and OS metadata are
hidden; dependency and build directories are shown collapsed so the stack
stays identifiable; configuration and environment files are always shown.
Use --format to select raw, json, or xml output, and --version to print the
application version.`

	scanUse              = "scan [path]"
	scanAlias            = "s"
	scanShortDescription = "render the filtered directory structure (" + scanAlias + ")"
	scanLongDescription  = `Scan a directory and render its filtered structure.
Use --ignore to add hide patterns, --emoji for emoji markers, --output to
write a file instead of stdout, and --format to select raw, json, or xml.`
	scanUsageExample = `  # Render the current project with emoji markers
  scanfiles scan --emoji

  # Write the structure of another project to a file, hiding extra patterns
  scanfiles scan ../my_project --output structure.txt --ignore "*.generated.js" --ignore "fixtures"`

	patternsUse              = "patterns"
	patternsAlias            = "p"
	patternsShortDescription = "show the effective filter patterns (" + patternsAlias + ")"
	patternsLongDescription  = `Print the merged pattern groups a scan would apply: hidden patterns
(including any --ignore additions), collapsed directories, and always-shown
files. No traversal happens.`
	patternsUsageExample = `  # Inspect the defaults plus a custom addition
  scanfiles patterns --ignore "*.generated.js"`

	ignoreFlagDescription   = "additional hide pattern (repeatable)"
	emojiFlagDescription    = "use emoji markers instead of text markers"
	formatFlagDescription   = "output format"
	outputFlagDescription   = "write output to the given file instead of stdout"
	maxDepthFlagDescription = "maximum traversal depth"
	copyFlagDescription     = "copy rendered output to the clipboard"
	tokensFlagDescription   = "print the token count of the rendered output"
	modelFlagDescription    = "tokenizer model used for token counting"
	configFlagDescription   = "path to a configuration file"
	versionFlagDescription  = "display application version"

	tokenFooterFormat = "Tokens: %d (%s)\n"

	invalidFormatMessage        = "invalid format value '%s'"
	invalidMarkerStyleMessage   = "invalid marker style '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing scan root.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a scan root that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
	// errorWriteOutputFormat reports a failure to write the output file.
	errorWriteOutputFormat = "writing output to %s: %w"
	// errorCopyClipboardFormat reports a clipboard copy failure.
	errorCopyClipboardFormat = "copying output to clipboard: %w"

	outputFileMode = 0o644
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// Execute runs the scanfiles application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeCopyFlagArguments(os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var configFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createScanCommand(&configFilePath),
		createPatternsCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// scanOptions stores the scan command's flag values.
type scanOptions struct {
	ignorePatterns  []string
	emojiMarkers    bool
	format          string
	outputFilePath  string
	maxDepth        int
	copyToClipboard bool
	countTokens     bool
	tokenizerModel  string
}

// createScanCommand returns the scan subcommand.
func createScanCommand(configFilePath *string) *cobra.Command {
	var options scanOptions

	scanCommand := &cobra.Command{
		Use:     scanUse,
		Aliases: []string{scanAlias},
		Short:   scanShortDescription,
		Long:    scanLongDescription,
		Example: scanUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			scanRoot := defaultPath
			if len(arguments) > 0 {
				scanRoot = arguments[0]
			}
			return runScan(command, scanRoot, options, *configFilePath)
		},
	}

	scanCommand.Flags().StringArrayVarP(&options.ignorePatterns, ignoreFlagName, ignoreFlagShort, nil, ignoreFlagDescription)
	scanCommand.Flags().BoolVarP(&options.emojiMarkers, emojiFlagName, emojiFlagShort, false, emojiFlagDescription)
	scanCommand.Flags().StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	scanCommand.Flags().StringVarP(&options.outputFilePath, outputFlagName, outputFlagShort, "", outputFlagDescription)
	scanCommand.Flags().IntVar(&options.maxDepth, maxDepthFlagName, scanner.DefaultMaxDepth, maxDepthFlagDescription)
	scanCommand.Flags().BoolVar(&options.countTokens, tokensFlagName, false, tokensFlagDescription)
	scanCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerCopyFlag(scanCommand.Flags(), &options.copyToClipboard)
	return scanCommand
}

// createPatternsCommand returns the patterns subcommand.
func createPatternsCommand() *cobra.Command {
	var ignorePatterns []string
	var outputFormat string

	patternsCommand := &cobra.Command{
		Use:     patternsUse,
		Aliases: []string{patternsAlias},
		Short:   patternsShortDescription,
		Long:    patternsLongDescription,
		Example: patternsUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			formatLower := strings.ToLower(outputFormat)
			if !isSupportedFormat(formatLower) {
				return fmt.Errorf(invalidFormatMessage, formatLower)
			}
			ruleSet, ruleSetError := rules.NewRuleSet(ignorePatterns)
			if ruleSetError != nil {
				return ruleSetError
			}
			patternView := ruleSet.EffectivePatterns()
			switch formatLower {
			case types.FormatJSON:
				rendered, renderError := output.RenderPatternsJSON(patternView)
				if renderError != nil {
					return renderError
				}
				fmt.Fprintln(command.OutOrStdout(), rendered)
			case types.FormatXML:
				rendered, renderError := output.RenderPatternsXML(patternView)
				if renderError != nil {
					return renderError
				}
				fmt.Fprintln(command.OutOrStdout(), rendered)
			default:
				fmt.Fprint(command.OutOrStdout(), output.RenderPatternsText(patternView))
			}
			return nil
		},
	}

	patternsCommand.Flags().StringArrayVarP(&ignorePatterns, ignoreFlagName, ignoreFlagShort, nil, ignoreFlagDescription)
	patternsCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	return patternsCommand
}

// runScan validates the configuration, performs the traversal, and routes
// the rendered output to the selected sinks.
func runScan(command *cobra.Command, scanRoot string, options scanOptions, configFilePath string) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}

	effective := resolveEffectiveScanSettings(command, options, applicationConfiguration.Scan)
	if !isSupportedFormat(effective.format) {
		return fmt.Errorf(invalidFormatMessage, effective.format)
	}
	if effective.markerStyle != types.MarkerStyleText && effective.markerStyle != types.MarkerStyleEmoji {
		return fmt.Errorf(invalidMarkerStyleMessage, effective.markerStyle)
	}

	ruleSet, ruleSetError := rules.NewRuleSet(effective.ignorePatterns)
	if ruleSetError != nil {
		return ruleSetError
	}

	validatedRoot, rootValidationError := resolveAndValidateRoot(scanRoot)
	if rootValidationError != nil {
		return rootValidationError
	}

	renderLines, collectError := scanner.Collect(context.Background(), scanner.Options{
		Root:     validatedRoot.AbsolutePath,
		Rules:    ruleSet,
		MaxDepth: effective.maxDepth,
	})
	if collectError != nil {
		return collectError
	}

	var renderedOutput string
	switch effective.format {
	case types.FormatJSON:
		rendered, renderError := output.RenderJSON(validatedRoot.AbsolutePath, renderLines)
		if renderError != nil {
			return renderError
		}
		renderedOutput = rendered + "\n"
	case types.FormatXML:
		rendered, renderError := output.RenderXML(validatedRoot.AbsolutePath, renderLines)
		if renderError != nil {
			return renderError
		}
		renderedOutput = rendered + "\n"
	default:
		renderedOutput = output.RenderText(validatedRoot.AbsolutePath, renderLines, effective.markerStyle)
	}

	if effective.outputFilePath != "" {
		if writeError := os.WriteFile(effective.outputFilePath, []byte(renderedOutput), outputFileMode); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, effective.outputFilePath, writeError)
		}
	} else {
		fmt.Fprint(command.OutOrStdout(), renderedOutput)
	}

	if effective.copyToClipboard {
		copier := clipboard.NewService()
		if copyError := copier.Copy(renderedOutput); copyError != nil {
			return fmt.Errorf(errorCopyClipboardFormat, copyError)
		}
	}

	if effective.countTokens {
		tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(effective.tokenizerModel)
		if counterError != nil {
			return counterError
		}
		tokenCount, countError := tokenCounter.CountString(renderedOutput)
		if countError != nil {
			return countError
		}
		fmt.Fprintf(command.OutOrStdout(), tokenFooterFormat, tokenCount, resolvedModel)
	}

	return nil
}

// effectiveScanSettings is the scan configuration after merging flag values
// over file-based defaults. Explicitly set flags always win.
type effectiveScanSettings struct {
	ignorePatterns  []string
	markerStyle     string
	format          string
	outputFilePath  string
	maxDepth        int
	copyToClipboard bool
	countTokens     bool
	tokenizerModel  string
}

func resolveEffectiveScanSettings(command *cobra.Command, options scanOptions, fileDefaults config.ScanConfiguration) effectiveScanSettings {
	settings := effectiveScanSettings{
		markerStyle:     types.MarkerStyleText,
		format:          strings.ToLower(options.format),
		outputFilePath:  options.outputFilePath,
		maxDepth:        options.maxDepth,
		copyToClipboard: options.copyToClipboard,
		countTokens:     options.countTokens,
		tokenizerModel:  options.tokenizerModel,
	}

	if fileDefaults.MarkerStyle != "" {
		settings.markerStyle = strings.ToLower(fileDefaults.MarkerStyle)
	}
	if options.emojiMarkers {
		settings.markerStyle = types.MarkerStyleEmoji
	}
	if !command.Flags().Changed(formatFlagName) && fileDefaults.Format != "" {
		settings.format = strings.ToLower(fileDefaults.Format)
	}
	if !command.Flags().Changed(outputFlagName) && fileDefaults.Output != "" {
		settings.outputFilePath = fileDefaults.Output
	}
	if !command.Flags().Changed(maxDepthFlagName) && fileDefaults.MaxDepth != nil {
		settings.maxDepth = *fileDefaults.MaxDepth
	}
	if !command.Flags().Changed(copyFlagName) && fileDefaults.Clipboard != nil {
		settings.copyToClipboard = *fileDefaults.Clipboard
	}
	if !command.Flags().Changed(tokensFlagName) && fileDefaults.Tokens.Enabled != nil {
		settings.countTokens = *fileDefaults.Tokens.Enabled
	}
	if !command.Flags().Changed(modelFlagName) && fileDefaults.Tokens.Model != "" {
		settings.tokenizerModel = fileDefaults.Tokens.Model
	}

	settings.ignorePatterns = append(settings.ignorePatterns, fileDefaults.Ignore...)
	settings.ignorePatterns = append(settings.ignorePatterns, options.ignorePatterns...)

	return settings
}

// resolveAndValidateRoot converts the scan root to absolute form and
// validates that it exists and is a directory.
func resolveAndValidateRoot(inputPath string) (types.ValidatedPath, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	pathInformation, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !pathInformation.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true}, nil
}
