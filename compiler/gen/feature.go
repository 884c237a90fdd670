package gen

var (
	// FeatureConstructor provides a feature-flag for a package-level
	// constructor next to the Builder method of the record.
	FeatureConstructor = Feature{
		Name:        "constructor",
		Stage:       Stable,
		Default:     false,
		Description: "Generates a New<Builder> function returning an empty builder",
	}

	// FeatureBuildX provides a feature-flag for a panicking Build variant.
	FeatureBuildX = Feature{
		Name:        "buildx",
		Stage:       Stable,
		Default:     false,
		Description: "Generates BuildX, which calls Build and panics if it returns an error",
	}

	// FeatureReset provides a feature-flag for a method clearing every
	// field of a builder.
	FeatureReset = Feature{
		Name:        "reset",
		Stage:       Beta,
		Default:     false,
		Description: "Generates Reset, which empties every field of the builder",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureConstructor,
		FeatureBuildX,
		FeatureReset,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested.
	Experimental

	// Alpha features are features whose initial development was finished,
	// but we expect breaking-changes to their APIs.
	Alpha

	// Beta features are Alpha features that were documented, and no
	// breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// String returns the name of the stage.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the buildergen codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
