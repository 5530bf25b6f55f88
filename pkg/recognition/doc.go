// Package recognition turns a game screenshot into tubes of color tokens.
//
// The solver does not depend on this package. Anything implementing
// Recognizer can feed it; ScreenshotRecognizer is the fixed-geometry scanner
// for the game's 1080px wide screenshots, tuned through
// config.RecognizerConfig.
package recognition
