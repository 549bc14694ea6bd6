package rules

// defaultCollapseDirectories lists directory names that identify the
// project's stack and are rendered as a single line with their contents
// pruned: package managers, build outputs, framework caches, virtual
// environments.
var defaultCollapseDirectories = []string{
	// Package managers and dependencies
	"node_modules", "vendor", "bower_components", "packages",
	"site-packages", ".pythonlibs", "jspm_packages",

	// Version control
	".git",

	// Build and output
	"dist", "build", "target", "out", "bin",

	// Framework specific
	".next", ".nuxt", ".output",

	// Python specific
	"__pycache__", ".venv", "venv", "env",

	// Caches
	".parcel-cache", ".webpack", ".rollup-cache",
}

// defaultAlwaysShowFiles lists configuration, environment, and
// project-definition files that stay visible even when a broader hide
// pattern would otherwise match them.
var defaultAlwaysShowFiles = []string{
	// Build configs
	"vite.config.js", "vite.config.ts",
	"webpack.config.js", "webpack.config.ts",
	"rollup.config.js", "rollup.config.ts",
	"next.config.js", "next.config.ts",
	"svelte.config.js", "svelte.config.ts",
	"nuxt.config.js", "nuxt.config.ts",
	"*.config.js", "*.config.ts",

	// Package managers
	"package.json", "composer.json",
	"cargo.toml", "go.mod",

	// Environment files
	".env", ".env.*",

	// Other common configs
	"config.*",
	"tsconfig.json", "babel.config.js",
	"jest.config.js", "postcss.config.js",
}

// defaultAlwaysHide lists names and patterns hidden outright: compiled
// artifacts, OS and IDE metadata, logs, caches, lock files.
var defaultAlwaysHide = []string{
	// Version control
	".svn", ".hg", ".bzr",

	// Python
	".pytest_cache", "htmlcov", ".tox",
	"*.egg-info", "eggs", "pip-wheel-metadata", "poetry.lock",
	".hypothesis", ".conda", ".jupyter",

	// Node.js / JavaScript
	".npm", ".cache", ".yarn", ".pnp.*", ".vite",

	// Java / Kotlin / Android
	".gradle", ".m2", "classes", "META-INF", "MANIFEST.MF",
	"*.iml", "*.iws", "*.ipr",

	// IDE and editors
	".idea", ".vscode", ".vs",
	".settings", ".project", ".classpath",
	"*.swp", "*.swo", "*~",
	".history", ".sourcemaps",

	// OS specific
	".DS_Store", ".AppleDouble", ".LSOverride",
	"Thumbs.db", "desktop.ini", "$RECYCLE.BIN",
	"System Volume Information",
	".Spotlight-V100", ".Trashes",

	// Build tools and test coverage
	"coverage", ".nyc_output", ".sass-cache",
	".coverage", "coverage.xml", "nosetests.xml",
	"*.css.map", "*.js.map", "*.map",

	// Logs and temporary files
	"*.log", "logs", "log",
	".temp", ".tmp", "tmp",
	"*.bak", "*.retry",

	// Compiled files
	"*.pyc", "*.pyo", "*.pyd",
	"*.so", "*.dll", "*.dylib",
	"*.class", "*.o", "*.ko",
	"*.obj", "*.exe", "*.pid",

	// Package lock files (often very large)
	"yarn.lock", "package-lock.json",
	"pnpm-lock.yaml", "bun.lockb",

	// Documentation build
	"docs/_build", ".docusaurus",

	// Docker and CI caches
	".docker", ".serverless", ".circleci/cache",
}
