package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Tudore/SU2/InputParameters"
	"github.com/Tudore/SU2/types"
)

// forceFactor computes the non-dimensionalization 1/(q_inf * RefArea).
// Compressible flows reference the free stream (or the motion Mach
// number on dynamic grids); incompressible flows reference either the
// free stream or the user-provided reference values depending on the
// non-dimensionalization mode.
func (s *FVMFlowSolver) forceFactor() (factor float64) {
	var (
		cfg                 = s.Config
		refDensity, refVel2 float64
	)
	if s.Regime == InputParameters.COMPRESSIBLE {
		refDensity = s.DensityInf
		if cfg.DynamicGrid {
			mach2Vel := math.Sqrt(s.Gamma * s.GasConstant * s.TemperatureInf)
			machMotion := cfg.FreeStream.MachMotion
			refVel2 = (machMotion * mach2Vel) * (machMotion * mach2Vel)
		} else {
			refVel2 = floats.Dot(s.VelocityInf[:s.NDim], s.VelocityInf[:s.NDim])
		}
	} else {
		switch cfg.GetIncNonDim() {
		case InputParameters.DIMENSIONAL, InputParameters.INITIAL_VALUES:
			refDensity = s.DensityInf
			refVel2 = floats.Dot(s.VelocityInf[:s.NDim], s.VelocityInf[:s.NDim])
		case InputParameters.REFERENCE_VALUES:
			refDensity = cfg.IncDensityRef
			refVel2 = cfg.IncVelocityRef * cfg.IncVelocityRef
		}
	}
	factor = 1.0 / (0.5 * refDensity * cfg.RefArea * refVel2)
	return
}

// momentOrigin resolves the moment reference origin for a marker. The
// default is the first monitored surface's origin; a monitored marker
// whose tag matches a monitored surface uses that surface's origin. An
// unmatched tag silently keeps the default.
func (s *FVMFlowSolver) momentOrigin(iMarker int, monitoring bool) (origin [3]float64) {
	if len(s.Config.Monitoring) > 0 {
		origin = s.Config.Monitoring[0].Origin
	}
	if monitoring {
		if iMon := s.MonitorIndexOf(s.Config.Markers[iMarker].Tag); iMon >= 0 {
			origin = s.Config.Monitoring[iMon].Origin
		}
	}
	return
}

// axiFactor is the revolution multiplier for axisymmetric runs: the 2D
// per-unit-length force at radius r stands in for a ring of length 2*pi*r
func (s *FVMFlowSolver) axiFactor(iPoint int) float64 {
	if s.Config.Axisymmetric {
		return 2.0 * math.Pi * s.Mesh.Coords[iPoint][1]
	}
	return 1.0
}

// projectForces rotates the body-axis force/moment sums of one marker
// into wind-aligned coefficients and stores them in slot iMarker of ca.
// 2D uses the angle of attack only; 3D adds the sideslip rotation, the
// side-force coefficient and the extra moment axes.
func (s *FVMFlowSolver) projectForces(ca *AeroCoeffsArray, iMarker int,
	force, moment, momentXF, momentYF, momentZF [3]float64) {
	var (
		alpha = s.Config.AlphaRad()
		beta  = s.Config.BetaRad()
	)
	if s.NDim == 2 {
		ca.CD[iMarker] = force[0]*math.Cos(alpha) + force[1]*math.Sin(alpha)
		ca.CL[iMarker] = -force[0]*math.Sin(alpha) + force[1]*math.Cos(alpha)
		ca.CEff[iMarker] = ca.CL[iMarker] / (ca.CD[iMarker] + EPS)
		ca.CMz[iMarker] = moment[2]
		ca.CoPx[iMarker] = momentZF[1]
		ca.CoPy[iMarker] = -momentZF[0]
		ca.CFx[iMarker] = force[0]
		ca.CFy[iMarker] = force[1]
		ca.CT[iMarker] = -ca.CFx[iMarker]
		ca.CQ[iMarker] = -ca.CMz[iMarker]
		ca.CMerit[iMarker] = ca.CT[iMarker] / (ca.CQ[iMarker] + EPS)
	} else {
		ca.CD[iMarker] = force[0]*math.Cos(alpha)*math.Cos(beta) +
			force[1]*math.Sin(beta) + force[2]*math.Sin(alpha)*math.Cos(beta)
		ca.CL[iMarker] = -force[0]*math.Sin(alpha) + force[2]*math.Cos(alpha)
		ca.CSF[iMarker] = -force[0]*math.Sin(beta)*math.Cos(alpha) +
			force[1]*math.Cos(beta) - force[2]*math.Sin(beta)*math.Sin(alpha)
		ca.CEff[iMarker] = ca.CL[iMarker] / (ca.CD[iMarker] + EPS)
		ca.CMx[iMarker] = moment[0]
		ca.CMy[iMarker] = moment[1]
		ca.CMz[iMarker] = moment[2]
		ca.CoPx[iMarker] = -momentYF[0]
		ca.CoPz[iMarker] = momentYF[2]
		ca.CFx[iMarker] = force[0]
		ca.CFy[iMarker] = force[1]
		ca.CFz[iMarker] = force[2]
		ca.CT[iMarker] = -ca.CFz[iMarker]
		ca.CQ[iMarker] = -ca.CMz[iMarker]
		ca.CMerit[iMarker] = ca.CT[iMarker] / (ca.CQ[iMarker] + EPS)
	}
}

// accumulateMoment adds the moment contribution of one vertex force to
// the marker's moment and center-of-pressure helper sums
func (s *FVMFlowSolver) accumulateMoment(force, momentDist, coord [3]float64,
	moment, momentXF, momentYF, momentZF *[3]float64) {
	var (
		refLength = s.Config.RefLength
	)
	if s.NDim == 3 {
		moment[0] += (force[2]*momentDist[1] - force[1]*momentDist[2]) / refLength
		momentXF[1] += -force[1] * coord[2]
		momentXF[2] += force[2] * coord[1]

		moment[1] += (force[0]*momentDist[2] - force[2]*momentDist[0]) / refLength
		momentYF[2] += -force[2] * coord[0]
		momentYF[0] += force[0] * coord[2]
	}
	moment[2] += (force[1]*momentDist[0] - force[0]*momentDist[1]) / refLength
	momentZF[0] += -force[0] * coord[1]
	momentZF[1] += force[1] * coord[0]
}

// addAllBound accumulates marker slot iMarker of src into the global
// accumulator, re-deriving the ratio coefficients from the sums
func addAllBound(dst *AeroCoeffs, src *AeroCoeffsArray, iMarker int) {
	dst.CD += src.CD[iMarker]
	dst.CL += src.CL[iMarker]
	dst.CSF += src.CSF[iMarker]
	dst.CEff = dst.CL / (dst.CD + EPS)
	dst.CFx += src.CFx[iMarker]
	dst.CFy += src.CFy[iMarker]
	dst.CFz += src.CFz[iMarker]
	dst.CMx += src.CMx[iMarker]
	dst.CMy += src.CMy[iMarker]
	dst.CMz += src.CMz[iMarker]
	dst.CoPx += src.CoPx[iMarker]
	dst.CoPy += src.CoPy[iMarker]
	dst.CoPz += src.CoPz[iMarker]
	dst.CT += src.CT[iMarker]
	dst.CQ += src.CQ[iMarker]
	dst.CMerit = dst.CT / (dst.CQ + EPS)
}

// addSurface accumulates marker slot iMarker of src into monitored
// surface slot iMon. Only the reported coefficients are aggregated per
// surface; CEff is re-derived from the marker's own CL/CD.
func addSurface(surf *AeroCoeffsArray, iMon int, src *AeroCoeffsArray, iMarker int) {
	surf.CL[iMon] += src.CL[iMarker]
	surf.CD[iMon] += src.CD[iMarker]
	surf.CSF[iMon] += src.CSF[iMarker]
	surf.CEff[iMon] = src.CL[iMarker] / (src.CD[iMarker] + EPS)
	surf.CFx[iMon] += src.CFx[iMarker]
	surf.CFy[iMon] += src.CFy[iMarker]
	surf.CFz[iMon] += src.CFz[iMarker]
	surf.CMx[iMon] += src.CMx[iMarker]
	surf.CMy[iMon] += src.CMy[iMarker]
	surf.CMz[iMon] += src.CMz[iMarker]
}

/*
	PressureForces integrates the inviscid pressure forces and moments
	over every wall, nearfield, inlet/outlet and actuator/engine marker.
	It runs first in the per-iteration force sequence and therefore
	assigns (rather than adds to) the running totals.
*/
func (s *FVMFlowSolver) PressureForces() {
	var (
		cfg         = s.Config
		mesh        = s.Mesh
		factor      = s.forceFactor()
		refPressure = s.PressureInf // Reference pressure is always the far-field value
	)

	s.TotalCoeff.SetZero()
	s.TotalCNearFieldOF = 0
	s.TotalHeat = 0
	s.TotalMaxHeat = 0
	s.AllBoundInvCoeff.SetZero()
	s.AllBoundCNearFieldOF = 0
	s.SurfaceInvCoeff.SetZeroAll()
	s.SurfaceCoeff.SetZeroAll()

	for iMarker := 0; iMarker < s.NMarker; iMarker++ {
		var (
			kind       = cfg.MarkerKind(iMarker)
			monitoring = cfg.Markers[iMarker].Monitoring
			origin     = s.momentOrigin(iMarker, monitoring)
		)
		if !kind.PressureForceSurface() {
			continue
		}

		s.InvCoeff.SetZero(iMarker)
		s.CNearFieldOFInv[iMarker] = 0

		var (
			force, moment                  [3]float64
			momentXF, momentYF, momentZF   [3]float64
			nfPressOF                      float64
		)

		for iVertex, vert := range mesh.Markers[iMarker].Vertices {
			var (
				iPoint   = vert.Node
				pressure = s.Nodes.Pressure(iPoint)
			)
			// Pressure coefficient is recorded at halo nodes for
			// visualization; the force sums exclude them below
			s.CPressure[iMarker][iVertex] = (pressure - refPressure) * factor * cfg.RefArea

			if !mesh.NodeIsDomain(iPoint) || !monitoring {
				continue
			}
			var (
				normal = vert.Normal
				coord  = mesh.Coords[iPoint]
			)

			// Quadratic near-field objective, always against the
			// infinity pressure regardless of Mach number
			dp := pressure - s.PressureInf
			nfPressOF += 0.5 * dp * dp * normal[s.NDim-1]

			var momentDist [3]float64
			for iDim := 0; iDim < s.NDim; iDim++ {
				momentDist[iDim] = coord[iDim] - origin[iDim]
			}

			axiFactor := s.axiFactor(iPoint)

			// Minus sign from the outward normal orientation
			var vertForce [3]float64
			for iDim := 0; iDim < s.NDim; iDim++ {
				vertForce[iDim] = -(pressure - s.PressureInf) * normal[iDim] * factor * axiFactor
				force[iDim] += vertForce[iDim]
			}
			s.accumulateMoment(vertForce, momentDist, coord, &moment, &momentXF, &momentYF, &momentZF)
		}

		if !monitoring {
			continue
		}
		if kind != types.BCNearfield {
			s.projectForces(&s.InvCoeff, iMarker, force, moment, momentXF, momentYF, momentZF)
			addAllBound(&s.AllBoundInvCoeff, &s.InvCoeff, iMarker)
			if iMon := s.MonitorIndexOf(cfg.Markers[iMarker].Tag); iMon >= 0 {
				addSurface(&s.SurfaceInvCoeff, iMon, &s.InvCoeff, iMarker)
			}
		} else {
			// The nearfield marker only reports the pressure objective
			s.CNearFieldOFInv[iMarker] = nfPressOF
			s.AllBoundCNearFieldOF += s.CNearFieldOFInv[iMarker]
		}
	}

	if cfg.GetCommLevel() == InputParameters.COMM_FULL {
		s.reduceAllBound(&s.AllBoundInvCoeff)
		s.AllBoundCNearFieldOF = s.Red.SumFloat64(s.AllBoundCNearFieldOF)
		s.reduceSurface(&s.SurfaceInvCoeff)
	}

	// Pressure forces run first: assign the running totals
	s.TotalCoeff = s.AllBoundInvCoeff
	s.TotalCoeff.CEff = s.TotalCoeff.CL / (s.TotalCoeff.CD + EPS)
	s.TotalCoeff.CMerit = s.TotalCoeff.CT / (s.TotalCoeff.CQ + EPS)
	s.TotalCNearFieldOF = s.AllBoundCNearFieldOF

	for iMon := 0; iMon < s.NMarkerMon; iMon++ {
		s.SurfaceCoeff.CL[iMon] = s.SurfaceInvCoeff.CL[iMon]
		s.SurfaceCoeff.CD[iMon] = s.SurfaceInvCoeff.CD[iMon]
		s.SurfaceCoeff.CSF[iMon] = s.SurfaceInvCoeff.CSF[iMon]
		s.SurfaceCoeff.CEff[iMon] = s.SurfaceInvCoeff.CL[iMon] / (s.SurfaceInvCoeff.CD[iMon] + EPS)
		s.SurfaceCoeff.CFx[iMon] = s.SurfaceInvCoeff.CFx[iMon]
		s.SurfaceCoeff.CFy[iMon] = s.SurfaceInvCoeff.CFy[iMon]
		s.SurfaceCoeff.CFz[iMon] = s.SurfaceInvCoeff.CFz[iMon]
		s.SurfaceCoeff.CMx[iMon] = s.SurfaceInvCoeff.CMx[iMon]
		s.SurfaceCoeff.CMy[iMon] = s.SurfaceInvCoeff.CMy[iMon]
		s.SurfaceCoeff.CMz[iMon] = s.SurfaceInvCoeff.CMz[iMon]
	}
}
