package solver

import (
	"github.com/Tudore/SU2/InputParameters"
)

/*
	MomentumForces integrates the momentum-flux forces over the
	inlet/outlet, actuator-disk and engine markers. It runs after
	PressureForces and adds to the running totals.
*/
func (s *FVMFlowSolver) MomentumForces() {
	var (
		cfg    = s.Config
		mesh   = s.Mesh
		factor = s.forceFactor()
	)

	s.AllBoundMntCoeff.SetZero()
	s.SurfaceMntCoeff.SetZeroAll()

	for iMarker := 0; iMarker < s.NMarker; iMarker++ {
		var (
			kind       = cfg.MarkerKind(iMarker)
			monitoring = cfg.Markers[iMarker].Monitoring
			origin     = s.momentOrigin(iMarker, monitoring)
		)
		if !kind.FlowThrough() {
			continue
		}

		s.MntCoeff.SetZero(iMarker)

		var (
			force, moment                [3]float64
			momentXF, momentYF, momentZF [3]float64
		)

		for _, vert := range mesh.Markers[iMarker].Vertices {
			var (
				iPoint = vert.Node
			)
			if !mesh.NodeIsDomain(iPoint) || !monitoring {
				continue
			}
			var (
				normal   = vert.Normal
				coord    = mesh.Coords[iPoint]
				density  = s.Nodes.Density(iPoint)
				massFlow float64
				velocity, momentDist [3]float64
			)
			for iDim := 0; iDim < s.NDim; iDim++ {
				velocity[iDim] = s.Nodes.Velocity(iPoint, iDim)
				momentDist[iDim] = coord[iDim] - origin[iDim]
				massFlow -= normal[iDim] * velocity[iDim] * density
			}

			axiFactor := s.axiFactor(iPoint)

			var vertForce [3]float64
			for iDim := 0; iDim < s.NDim; iDim++ {
				vertForce[iDim] = massFlow * velocity[iDim] * factor * axiFactor
				force[iDim] += vertForce[iDim]
			}
			s.accumulateMoment(vertForce, momentDist, coord, &moment, &momentXF, &momentYF, &momentZF)
		}

		if !monitoring {
			continue
		}
		s.projectForces(&s.MntCoeff, iMarker, force, moment, momentXF, momentYF, momentZF)
		addAllBound(&s.AllBoundMntCoeff, &s.MntCoeff, iMarker)
		if iMon := s.MonitorIndexOf(cfg.Markers[iMarker].Tag); iMon >= 0 {
			addSurface(&s.SurfaceMntCoeff, iMon, &s.MntCoeff, iMarker)
		}
	}

	if cfg.GetCommLevel() == InputParameters.COMM_FULL {
		s.reduceAllBound(&s.AllBoundMntCoeff)
		s.reduceSurface(&s.SurfaceMntCoeff)
	}

	// Add to the totals assigned by the pressure pass
	s.addIntoTotals(&s.AllBoundMntCoeff, &s.SurfaceMntCoeff)
}

// addIntoTotals folds one pass's reduced global and per-surface sums
// into TotalCoeff / SurfaceCoeff, re-deriving the ratio coefficients
// from the accumulated totals
func (s *FVMFlowSolver) addIntoTotals(allBound *AeroCoeffs, surface *AeroCoeffsArray) {
	s.TotalCoeff.CD += allBound.CD
	s.TotalCoeff.CL += allBound.CL
	s.TotalCoeff.CSF += allBound.CSF
	s.TotalCoeff.CEff = s.TotalCoeff.CL / (s.TotalCoeff.CD + EPS)
	s.TotalCoeff.CFx += allBound.CFx
	s.TotalCoeff.CFy += allBound.CFy
	s.TotalCoeff.CFz += allBound.CFz
	s.TotalCoeff.CMx += allBound.CMx
	s.TotalCoeff.CMy += allBound.CMy
	s.TotalCoeff.CMz += allBound.CMz
	s.TotalCoeff.CoPx += allBound.CoPx
	s.TotalCoeff.CoPy += allBound.CoPy
	s.TotalCoeff.CoPz += allBound.CoPz
	s.TotalCoeff.CT += allBound.CT
	s.TotalCoeff.CQ += allBound.CQ
	s.TotalCoeff.CMerit = s.TotalCoeff.CT / (s.TotalCoeff.CQ + EPS)

	for iMon := 0; iMon < s.NMarkerMon; iMon++ {
		s.SurfaceCoeff.CL[iMon] += surface.CL[iMon]
		s.SurfaceCoeff.CD[iMon] += surface.CD[iMon]
		s.SurfaceCoeff.CSF[iMon] += surface.CSF[iMon]
		s.SurfaceCoeff.CEff[iMon] = s.SurfaceCoeff.CL[iMon] / (s.SurfaceCoeff.CD[iMon] + EPS)
		s.SurfaceCoeff.CFx[iMon] += surface.CFx[iMon]
		s.SurfaceCoeff.CFy[iMon] += surface.CFy[iMon]
		s.SurfaceCoeff.CFz[iMon] += surface.CFz[iMon]
		s.SurfaceCoeff.CMx[iMon] += surface.CMx[iMon]
		s.SurfaceCoeff.CMy[iMon] += surface.CMy[iMon]
		s.SurfaceCoeff.CMz[iMon] += surface.CMz[iMon]
	}
}
