package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Tudore/SU2/InputParameters"
	"github.com/Tudore/SU2/geometry"
)

const (
	// maxHFNorm is the exponent of the increasing-norm approximation of
	// the maximum heat flux: sum |q|^8, rooted after all reductions
	maxHFNorm = 8.0

	// qcrCR1 is the QCR2000 model constant
	qcrCR1 = 0.3
)

/*
	FrictionForces integrates the viscous stresses over the heat-flux,
	isothermal and CHT wall markers: skin friction, y+, wall heat flux
	per vertex, and the viscous force/moment coefficients. It runs last
	in the force sequence and adds to the running totals.
*/
func (s *FVMFlowSolver) FrictionForces() {
	var (
		cfg    = s.Config
		mesh   = s.Mesh
		factor = s.forceFactor()
		energy = cfg.EnergyEquation
		qcr    = cfg.QCR
	)

	// The wall shear non-dimensionalization shares the dynamic pressure
	// with the force factor
	dynPressure := 1.0 / (factor * cfg.RefArea)

	s.AllBoundViscCoeff.SetZero()
	s.SurfaceViscCoeff.SetZeroAll()
	s.AllBoundHFVisc = 0
	s.AllBoundMaxHFVisc = 0
	for iMon := 0; iMon < s.NMarkerMon; iMon++ {
		s.SurfaceHFVisc[iMon] = 0
		s.SurfaceMaxHFVisc[iMon] = 0
	}

	for iMarker := 0; iMarker < s.NMarker; iMarker++ {
		var (
			kind       = cfg.MarkerKind(iMarker)
			monitoring = cfg.Markers[iMarker].Monitoring
			origin     = s.momentOrigin(iMarker, monitoring)
		)
		if !kind.ViscousWall() {
			continue
		}

		s.ViscCoeff.SetZero(iMarker)
		s.HFVisc[iMarker] = 0
		s.MaxHFVisc[iMarker] = 0

		var (
			force, moment                [3]float64
			momentXF, momentYF, momentZF [3]float64
		)

		for iVertex, vert := range mesh.Markers[iMarker].Vertices {
			var (
				iPoint       = vert.Node
				iPointNormal = vert.NormalNeighbor
				coord        = mesh.Coords[iPoint]
				coordNormal  = mesh.Coords[iPointNormal]
				gradVel      [3][3]float64
				gradTemp     [3]float64
			)
			for iDim := 0; iDim < s.NDim; iDim++ {
				for jDim := 0; jDim < s.NDim; jDim++ {
					gradVel[iDim][jDim] = s.Nodes.GradientPrimitive(iPoint, iDim+1, jDim)
				}
				// Temperature lives at a regime-dependent slot in the
				// primitive gradient
				if s.Regime == InputParameters.COMPRESSIBLE {
					gradTemp[iDim] = s.Nodes.GradientPrimitive(iPoint, 0, iDim)
				} else {
					gradTemp[iDim] = s.Nodes.GradientPrimitive(iPoint, s.NDim+1, iDim)
				}
			}

			var (
				viscosity = s.Nodes.LaminarViscosity(iPoint)
				density   = s.Nodes.Density(iPoint)
			)
			unitNormal, area := geometry.UnitNormal(vert.Normal, s.NDim)

			tau := s.stressTensor(gradVel, viscosity, qcr)

			// Traction vector, then split off the normal component
			var tauElem [3]float64
			for iDim := 0; iDim < s.NDim; iDim++ {
				for jDim := 0; jDim < s.NDim; jDim++ {
					tauElem[iDim] += tau[iDim][jDim] * unitNormal[jDim]
				}
			}
			tauNormal := floats.Dot(tauElem[:s.NDim], unitNormal[:s.NDim])

			var tauTangent [3]float64
			for iDim := 0; iDim < s.NDim; iDim++ {
				tauTangent[iDim] = tauElem[iDim] - tauNormal*unitNormal[iDim]
				s.CSkinFriction[iMarker][iDim][iVertex] = tauTangent[iDim] / dynPressure
			}
			wallShearStress := floats.Norm(tauTangent[:s.NDim], 2)

			var wallDist [3]float64
			for iDim := 0; iDim < s.NDim; iDim++ {
				wallDist[iDim] = coord[iDim] - coordNormal[iDim]
			}
			wallDistMod := floats.Norm(wallDist[:s.NDim], 2)

			frictionVel := math.Sqrt(math.Abs(wallShearStress) / density)
			s.YPlus[iMarker][iVertex] = wallDistMod * frictionVel / (viscosity / density)

			// Wall heat flux from the normal temperature gradient.
			// Incompressible runs only carry temperature when the
			// energy equation is active.
			var gradTemperature, thermalConductivity float64
			if s.Regime == InputParameters.COMPRESSIBLE {
				for iDim := 0; iDim < s.NDim; iDim++ {
					gradTemperature -= gradTemp[iDim] * unitNormal[iDim]
				}
				cp := (s.Gamma / (s.Gamma - 1)) * s.GasConstant
				thermalConductivity = cp * viscosity / cfg.PrandtlLam
			} else {
				if energy {
					for iDim := 0; iDim < s.NDim; iDim++ {
						gradTemperature -= gradTemp[iDim] * unitNormal[iDim]
					}
				}
				thermalConductivity = s.Nodes.ThermalConductivity(iPoint)
			}
			s.HeatFlux[iMarker][iVertex] = -thermalConductivity * gradTemperature * cfg.HeatFluxRef

			// y+ and heat flux are recorded at halo nodes too, only the
			// force and heat sums exclude them
			if !mesh.NodeIsDomain(iPoint) || !monitoring {
				continue
			}

			axiFactor := s.axiFactor(iPoint)

			var vertForce, momentDist [3]float64
			for iDim := 0; iDim < s.NDim; iDim++ {
				vertForce[iDim] = tauElem[iDim] * area * factor * axiFactor
				force[iDim] += vertForce[iDim]
				momentDist[iDim] = coord[iDim] - origin[iDim]
			}
			s.accumulateMoment(vertForce, momentDist, coord, &moment, &momentXF, &momentYF, &momentZF)

			s.HFVisc[iMarker] += s.HeatFlux[iMarker][iVertex] * area
			s.MaxHFVisc[iMarker] += math.Pow(s.HeatFlux[iMarker][iVertex], maxHFNorm)
		}

		if !monitoring {
			continue
		}
		s.projectForces(&s.ViscCoeff, iMarker, force, moment, momentXF, momentYF, momentZF)
		s.MaxHFVisc[iMarker] = math.Pow(s.MaxHFVisc[iMarker], 1.0/maxHFNorm)

		addAllBound(&s.AllBoundViscCoeff, &s.ViscCoeff, iMarker)
		s.AllBoundHFVisc += s.HFVisc[iMarker]
		s.AllBoundMaxHFVisc += math.Pow(s.MaxHFVisc[iMarker], maxHFNorm)

		if iMon := s.MonitorIndexOf(cfg.Markers[iMarker].Tag); iMon >= 0 {
			addSurface(&s.SurfaceViscCoeff, iMon, &s.ViscCoeff, iMarker)
			s.SurfaceHFVisc[iMon] += s.HFVisc[iMarker]
			s.SurfaceMaxHFVisc[iMon] += math.Pow(s.MaxHFVisc[iMarker], maxHFNorm)
		}
	}

	s.AllBoundViscCoeff.CEff = s.AllBoundViscCoeff.CL / (s.AllBoundViscCoeff.CD + EPS)
	s.AllBoundViscCoeff.CMerit = s.AllBoundViscCoeff.CT / (s.AllBoundViscCoeff.CQ + EPS)
	s.AllBoundMaxHFVisc = math.Pow(s.AllBoundMaxHFVisc, 1.0/maxHFNorm)

	if cfg.GetCommLevel() == InputParameters.COMM_FULL {
		s.reduceAllBound(&s.AllBoundViscCoeff)
		s.AllBoundHFVisc = s.Red.SumFloat64(s.AllBoundHFVisc)
		// The L8 aggregate reduces in 8th-power space, rooted only after
		// the sum; reducing pre-rooted values would change the norm
		s.AllBoundMaxHFVisc = math.Pow(
			s.Red.SumFloat64(math.Pow(s.AllBoundMaxHFVisc, maxHFNorm)), 1.0/maxHFNorm)

		s.reduceSurface(&s.SurfaceViscCoeff)
		s.Red.SumFloat64s(s.SurfaceHFVisc)
		s.Red.SumFloat64s(s.SurfaceMaxHFVisc)
	}
	// Per-surface aggregates stay in 8th-power space until every
	// contribution, local and remote, has been summed
	for iMon := 0; iMon < s.NMarkerMon; iMon++ {
		s.SurfaceMaxHFVisc[iMon] = math.Pow(s.SurfaceMaxHFVisc[iMon], 1.0/maxHFNorm)
	}

	s.addIntoTotals(&s.AllBoundViscCoeff, &s.SurfaceViscCoeff)
	s.TotalHeat = s.AllBoundHFVisc
	s.TotalMaxHeat = s.AllBoundMaxHFVisc
}

// stressTensor evaluates the viscous stress tensor
// Tau = mu (grad u + grad u^T) - (2/3) mu (div u) I, with the optional
// QCR2000 rotation correction
func (s *FVMFlowSolver) stressTensor(gradVel [3][3]float64, viscosity float64, qcr bool) (tau [3][3]float64) {
	var (
		divVel float64
	)
	for iDim := 0; iDim < s.NDim; iDim++ {
		divVel += gradVel[iDim][iDim]
	}
	for iDim := 0; iDim < s.NDim; iDim++ {
		for jDim := 0; jDim < s.NDim; jDim++ {
			tau[iDim][jDim] = viscosity * (gradVel[jDim][iDim] + gradVel[iDim][jDim])
			if iDim == jDim {
				tau[iDim][jDim] -= (2.0 / 3.0) * viscosity * divVel
			}
		}
	}
	if !qcr {
		return
	}

	// Normalization of the antisymmetric rotation tensor, floored to
	// keep the division bounded
	var denAux float64
	for iDim := 0; iDim < s.NDim; iDim++ {
		for jDim := 0; jDim < s.NDim; jDim++ {
			denAux += gradVel[iDim][jDim] * gradVel[iDim][jDim]
		}
	}
	denAux = math.Sqrt(math.Max(denAux, 1e-10))

	var tauQCR [3][3]float64
	for iDim := 0; iDim < s.NDim; iDim++ {
		for jDim := 0; jDim < s.NDim; jDim++ {
			for kDim := 0; kDim < s.NDim; kDim++ {
				oIK := (gradVel[iDim][kDim] - gradVel[kDim][iDim]) / denAux
				oJK := (gradVel[jDim][kDim] - gradVel[kDim][jDim]) / denAux
				tauQCR[iDim][jDim] += oIK*tau[jDim][kDim] + oJK*tau[iDim][kDim]
			}
		}
	}
	for iDim := 0; iDim < s.NDim; iDim++ {
		for jDim := 0; jDim < s.NDim; jDim++ {
			tau[iDim][jDim] -= qcrCR1 * tauQCR[iDim][jDim]
		}
	}
	return
}
