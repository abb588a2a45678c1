package constants

const AlphaEM float64 = 1. / 137.           // fine-structure constant at zero momentum transfer
const HbarC2 float64 = 0.389                // [GeV^2 mb]
const MbToPb float64 = 1e9                  // [pb / mb]
const ElectronMass float64 = 0.510998950e-3 // [GeV]
const MuonMass float64 = 0.105658           // [GeV]
const TauMass float64 = 1.77686             // [GeV]

const ElectronPdgId = 11
const MuonPdgId = 13
const TauPdgId = 15
const PhotonPdgId = 22

const GridMagic uint32 = 0xdeadb33f
