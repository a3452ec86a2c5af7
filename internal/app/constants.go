package app

// MaxComputerSteps bounds the guesses a single computer turn may take.
const MaxComputerSteps = 4 * 13 * 4
